package shmup

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	xdraw "golang.org/x/image/draw"
)

type AssetId string

// AssetServer holds decoded texture assets keyed by generated ids.
type AssetServer struct {
	textures map[AssetId]TextureAsset
}

type TextureAsset struct {
	texels []uint8
	width  uint32
	height uint32
}

func (a TextureAsset) Texels() []uint8        { return a.texels }
func (a TextureAsset) Size() (uint32, uint32) { return a.width, a.height }

type AssetServerModule struct{}

func (AssetServerModule) Install(app *App) {
	app.AddResources(&AssetServer{
		textures: make(map[AssetId]TextureAsset),
	})
}

// LoadTexture decodes a PNG file into an RGBA texture asset.
func (server *AssetServer) LoadTexture(filename string) (AssetId, error) {
	file, err := os.Open(filename)
	if err != nil {
		return "", err
	}
	defer file.Close()

	img, err := png.Decode(file)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", filename, err)
	}

	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(bounds)
		xdraw.Draw(rgba, bounds, img, bounds.Min, xdraw.Src)
	}

	id := makeAssetId()
	server.textures[id] = TextureAsset{
		texels: rgba.Pix,
		width:  uint32(bounds.Dx()),
		height: uint32(bounds.Dy()),
	}
	return id, nil
}

// Texture returns a previously loaded texture asset.
func (server *AssetServer) Texture(id AssetId) (TextureAsset, bool) {
	tex, ok := server.textures[id]
	return tex, ok
}

// LoadAtlas reads an atlas manifest, loads the texture it names
// (resolved relative to the manifest's directory) and derives the
// per-sprite UV table from the texture's pixel size.
func (server *AssetServer) LoadAtlas(path string) (AssetId, map[string]UVMapping, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", nil, err
	}

	texName, rects, err := DecodeAtlas(data)
	if err != nil {
		return "", nil, err
	}

	texId, err := server.LoadTexture(filepath.Join(filepath.Dir(path), texName))
	if err != nil {
		return "", nil, err
	}

	tex := server.textures[texId]
	uvmap, err := BuildUVMappings(rects, int(tex.width), int(tex.height))
	if err != nil {
		return "", nil, err
	}
	return texId, uvmap, nil
}

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}
