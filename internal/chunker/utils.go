package chunker

import (
	"crypto/sha256"
	"fmt"
	"strings"
)

// ChunkID считает идентификатор чанка по файлу, позиции и тексту
func ChunkID(fileName string, index int, content string) string {
	hash := sha256.Sum256([]byte(fmt.Sprintf("%s\x00%d\x00%s", fileName, index, content)))
	return fmt.Sprintf("%x", hash[:8])
}

// splitLines приводит переводы строк к \n и режет текст на строки
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
