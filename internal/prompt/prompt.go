// Package prompt holds the fixed instruction templates sent to the
// generative-language API, keyed by prompt type.
package prompt

import (
	"fmt"
	"strings"
)

type Type string

const (
	Transcript Type = "transcript"
	Timestamps Type = "timestamps"
	Summary    Type = "summary"
	Scene      Type = "scene"
	Clips      Type = "clips"
	Fallback   Type = "fallback"
)

// templates is static data; it is never mutated after init.
var templates = map[Type]string{
	Scene: "Please provide a detailed description of the scene in the video, including:\n\n" +
		"Setting: Where the scene takes place (e.g., indoors, outdoors, specific location). Be specific - is it a forest, a city street, a living room?\n\n" +
		"Objects: Prominent objects visible in the scene (e.g., furniture, vehicles, natural elements). Include details like color, size, and material if discernible.\n\n" +
		"People: Description of any people present, including their appearance (clothing, hair, etc.), approximate age, and any actions they are performing.\n\n" +
		"Lighting: The overall lighting of the scene (e.g., bright, dim, natural, artificial). Note any specific light sources (lamps, sunlight).\n\n" +
		"Colors: Dominant colors and color palettes used in the scene.\n\n" +
		"Camera Angle/Movement: Describe the camera perspective (e.g., close-up, wide shot, aerial view) and any camera movement (panning, zooming, static).\n\n" +
		"Start output directly with the response -- do not include any introductory text or explanations.",
	Summary:    "Provide a concise summary of the main points in nested bullets, using quotes only when absolutely essential for clarity. Start output directly with the response.",
	Transcript: "Transcribe the video. Return only the spoken dialogue, verbatim. Omit any additional text or descriptions.",
	Timestamps: "Generate a timestamped transcript of the video. Each line must follow this format precisely: [hh:mm:ss] Dialogue. Return only the timestamp and spoken content; omit any other text or formatting.",
	Clips: "Extract shareable clips for social media. Each clip must include:\n\n" +
		"* **Timestamp:** [hh:mm:ss]-[hh:mm:ss]\n" +
		"* **Transcript:** Verbatim dialogue/text within the clip.\n" +
		"* **Rationale:** A concise explanation (under 20 words) of the clip's social media appeal (e.g., \"humorous,\" \"controversial,\" \"inspiring,\" \"informative\"). Focus on virality, engagement potential (shares, likes, comments).\n\n" +
		"Start output directly with the response -- do not include any introductory text or explanations.",
	Fallback: "Summarize this YouTube video with a focus on actionable insights. Use nested bullets and include relevant quotes. Specifically, highlight any recommended tools, strategies, or resources mentioned.",
}

// order fixes the listing used in usage and error messages.
var order = []Type{Transcript, Timestamps, Summary, Scene, Clips, Fallback}

// Parse validates a user-supplied prompt-type selector. Matching is
// case-insensitive; the canonical lowercase Type is returned.
func Parse(value string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(value)))
	if _, ok := templates[t]; !ok {
		return "", fmt.Errorf("unknown prompt type %q (valid: %s)", value, strings.Join(Names(), ", "))
	}
	return t, nil
}

// Template returns the fixed instruction text for a known prompt type.
func (t Type) Template() (string, bool) {
	tpl, ok := templates[t]
	return tpl, ok
}

func Names() []string {
	names := make([]string, 0, len(order))
	for _, t := range order {
		names = append(names, string(t))
	}
	return names
}
