package document

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// FileSetHash считает хэш набора файлов, чтобы понять, нужно ли пересобирать индекс
func FileSetHash(files []File) string {
	h := sha256.New()
	var size [8]byte
	for _, f := range files {
		binary.BigEndian.PutUint64(size[:], uint64(len(f.Data)))
		h.Write(size[:])
		h.Write(f.Data)
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
