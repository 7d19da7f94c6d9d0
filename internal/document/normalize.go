package document

import "strings"

var pdfArtifacts = strings.NewReplacer(
	"\r\n", "\n",
	"\r", "\n",
	"\u00AD", "", // мягкий перенос
	"\u00A0", " ", // неразрывный пробел
	"\u2028", " ",
	"\u2029", "\n\n",
)

// Normalize чистит текст, извлечённый из PDF
func Normalize(content string) string {
	if content == "" {
		return ""
	}
	return strings.TrimSpace(pdfArtifacts.Replace(content))
}
