package llm

import "strings"

// promptTextLimit caps how much OCR text goes into the prompt; card OCR is
// short and anything beyond this is recognition noise.
const promptTextLimit = 3000

// BuildPrompt renders the extraction prompt for the combined OCR text of both
// document sides.
func BuildPrompt(frontText, backText string) string {
	combined := frontText
	if backText != "" {
		combined = frontText + "\n" + backText
	}
	if len(combined) > promptTextLimit {
		combined = combined[:promptTextLimit]
	}

	var b strings.Builder
	b.WriteString("You are an assistant extracting identity card information from OCR text.\n\n")
	b.WriteString("Extract the following fields from this text:\n")
	b.WriteString("- name\n")
	b.WriteString("- date_of_birth\n")
	b.WriteString("- gender (Male, Female or Other)\n")
	b.WriteString("- id_number (exactly 12 digits)\n")
	b.WriteString("- vid_number (exactly 16 digits)\n")
	b.WriteString("- address\n")
	b.WriteString("- postal_code (exactly 6 digits)\n\n")
	b.WriteString("Text:\n\"\"\"\n")
	b.WriteString(combined)
	b.WriteString("\n\"\"\"\n\n")
	b.WriteString("Return the result as a single JSON object only, with exactly these keys:\n")
	b.WriteString(`{"name": "...", "date_of_birth": "...", "gender": "...", "id_number": "...", "vid_number": "...", "address": "...", "postal_code": "..."}`)
	b.WriteString("\nOmit a key if the field is not present. Never invent digits.")
	return b.String()
}
