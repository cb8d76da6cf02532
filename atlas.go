package shmup

import (
	"encoding/json"
	"errors"
	"fmt"
)

var (
	// ErrInvalidAtlas marks a malformed manifest or a sprite rectangle
	// that cannot exist inside its texture. Fatal at startup.
	ErrInvalidAtlas = errors.New("invalid atlas")
	// ErrUnknownSprite marks a population request for a sprite name the
	// atlas does not define. Fatal at population time.
	ErrUnknownSprite = errors.New("unknown sprite")
)

// SpriteRect is a sprite's pixel rectangle within the atlas texture,
// with the origin at the texture's top-left corner.
type SpriteRect struct {
	X, Y, W, H int
}

// UVMapping locates one sprite inside the atlas texture.
//
// U0,V0 is the sprite's lower-left corner and U1,V1 its upper-right
// corner in normalized UV space (V grows upward, so the manifest's
// top-left pixel rows land at V1). SU and SV are half the sprite's
// pixel width and height; quads use them as local vertex offsets so
// scaling pivots around the quad center.
//
// Mappings are built once at atlas load and shared read-only by every
// particle of the sprite's kind.
type UVMapping struct {
	U0, V0 float32
	U1, V1 float32
	SU, SV float32
}

// DecodeAtlas parses an atlas manifest: a JSON object whose single key
// names the backing texture file and whose value maps sprite names to
// [x, y, w, h] pixel rectangles.
func DecodeAtlas(data []byte) (string, map[string]SpriteRect, error) {
	var manifest map[string]map[string][4]int
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidAtlas, err)
	}
	if len(manifest) != 1 {
		return "", nil, fmt.Errorf("%w: expected exactly one texture entry, got %d", ErrInvalidAtlas, len(manifest))
	}

	for texName, entries := range manifest {
		rects := make(map[string]SpriteRect, len(entries))
		for name, r := range entries {
			rects[name] = SpriteRect{X: r[0], Y: r[1], W: r[2], H: r[3]}
		}
		return texName, rects, nil
	}
	return "", nil, ErrInvalidAtlas
}

// BuildUVMappings derives the normalized UV mapping for every sprite
// in the manifest. Pure function: identical inputs yield identical
// tables.
func BuildUVMappings(rects map[string]SpriteRect, texWidth, texHeight int) (map[string]UVMapping, error) {
	if texWidth <= 0 || texHeight <= 0 {
		return nil, fmt.Errorf("%w: texture size %dx%d", ErrInvalidAtlas, texWidth, texHeight)
	}
	if len(rects) == 0 {
		return nil, fmt.Errorf("%w: no sprites in manifest", ErrInvalidAtlas)
	}

	w, h := float32(texWidth), float32(texHeight)
	uvmap := make(map[string]UVMapping, len(rects))
	for name, r := range rects {
		if r.W <= 0 || r.H <= 0 {
			return nil, fmt.Errorf("%w: sprite %q has non-positive size %dx%d", ErrInvalidAtlas, name, r.W, r.H)
		}
		if r.X < 0 || r.Y < 0 || r.X+r.W > texWidth || r.Y+r.H > texHeight {
			return nil, fmt.Errorf("%w: sprite %q rect exceeds %dx%d texture", ErrInvalidAtlas, name, texWidth, texHeight)
		}

		x0, y0 := float32(r.X), float32(r.Y)
		x1, y1 := float32(r.X+r.W), float32(r.Y+r.H)
		// Texture space puts the origin top-left, UV space bottom-left,
		// so V is flipped.
		uvmap[name] = UVMapping{
			U0: x0 / w, V0: 1 - y1/h,
			U1: x1 / w, V1: 1 - y0/h,
			SU: 0.5 * float32(r.W),
			SV: 0.5 * float32(r.H),
		}
	}
	return uvmap, nil
}
