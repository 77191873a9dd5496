// file: internals/helpers/upload.go
package helper

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/chai2010/webp"
	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// Métadonnées d'un fichier stocké, persistées en JSON à côté du chemin.
type UploadMeta struct {
	NomOriginal string `json:"nom_original"`
	ContentType string `json:"content_type"`
	Taille      int    `json:"taille"`
}

var filenameRe = regexp.MustCompile(`[^a-zA-Z0-9.\-_]+`)

func sanitizeFilename(filename string) string {
	return filenameRe.ReplaceAllString(filename, "_")
}

// GenerateUniqueFilename : <dossier>/<date>-<uuid>-<nom-nettoyé>
func GenerateUniqueFilename(folder, originalFilename string) string {
	timestamp := time.Now().Format("20060102")
	return fmt.Sprintf("%s/%s-%s-%s", folder, timestamp, uuid.New().String(), sanitizeFilename(originalFilename))
}

const maxImageDim = 1600

// SaveUploadedFile écrit le fichier sous baseDir/folder. Les images JPEG/PNG
// sont réduites si besoin puis réencodées en WebP (qualité 85) ; tout autre
// contenu est stocké tel quel. Retourne le chemin relatif et les métadonnées.
func SaveUploadedFile(baseDir, folder string, fh *multipart.FileHeader) (string, UploadMeta, error) {
	src, err := fh.Open()
	if err != nil {
		return "", UploadMeta{}, fmt.Errorf("ouverture du fichier impossible: %w", err)
	}
	defer src.Close()

	buf := new(bytes.Buffer)
	if _, err := io.Copy(buf, src); err != nil {
		return "", UploadMeta{}, fmt.Errorf("lecture du fichier impossible: %w", err)
	}

	raw := buf.Bytes()
	mt := mimetype.Detect(raw)
	name := fh.Filename

	switch mt.Is("image/jpeg") || mt.Is("image/png") {
	case true:
		img, derr := imaging.Decode(bytes.NewReader(raw))
		if derr != nil {
			return "", UploadMeta{}, fmt.Errorf("image invalide: %w", derr)
		}
		if b := img.Bounds(); b.Dx() > maxImageDim || b.Dy() > maxImageDim {
			img = imaging.Fit(img, maxImageDim, maxImageDim, imaging.Lanczos)
		}
		out := new(bytes.Buffer)
		if err := webp.Encode(out, img, &webp.Options{Lossless: false, Quality: 85}); err != nil {
			return "", UploadMeta{}, fmt.Errorf("conversion WebP impossible: %w", err)
		}
		raw = out.Bytes()
		name = strings.TrimSuffix(name, filepath.Ext(name)) + ".webp"
		mt = mimetype.Detect(raw)
	}

	rel := GenerateUniqueFilename(folder, name)
	abs := filepath.Join(baseDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(abs), 0o755); err != nil {
		return "", UploadMeta{}, fmt.Errorf("création du dossier impossible: %w", err)
	}
	if err := os.WriteFile(abs, raw, 0o644); err != nil {
		return "", UploadMeta{}, fmt.Errorf("écriture du fichier impossible: %w", err)
	}

	return rel, UploadMeta{
		NomOriginal: fh.Filename,
		ContentType: mt.String(),
		Taille:      len(raw),
	}, nil
}

// RemoveStoredFile supprime un fichier stocké ; best-effort, l'appelant
// ignore l'erreur lors d'une suppression d'entité.
func RemoveStoredFile(baseDir, rel string) error {
	if strings.TrimSpace(rel) == "" {
		return nil
	}
	return os.Remove(filepath.Join(baseDir, filepath.FromSlash(rel)))
}
