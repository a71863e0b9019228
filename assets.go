package lumen

import (
	"fmt"

	"github.com/google/uuid"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// MeshHandle refers to a mesh registered with the asset server.
type MeshHandle struct {
	assetId AssetId
}

func (h MeshHandle) Id() AssetId { return h.assetId }

type meshAsset struct {
	version uint
	mesh    Mesh
}

// AssetServer owns the CPU-side mesh assets the renderer draws. The
// renderer caches GPU buffers per asset id and re-uploads when the
// version changes.
type AssetServer struct {
	meshes map[AssetId]meshAsset
	log    Logger
}

func NewAssetServer(log Logger) *AssetServer {
	if log == nil {
		log = NewNopLogger()
	}
	return &AssetServer{
		meshes: map[AssetId]meshAsset{},
		log:    log,
	}
}

// LoadMesh registers a mesh and returns its handle. The mesh must carry
// at least one triangle and indices within range.
func (server *AssetServer) LoadMesh(mesh Mesh) (MeshHandle, error) {
	if len(mesh.Vertices) < 3 {
		return MeshHandle{}, fmt.Errorf("mesh needs at least 3 vertices, got %d", len(mesh.Vertices))
	}
	for _, idx := range mesh.Indices {
		if int(idx) >= len(mesh.Vertices) {
			return MeshHandle{}, fmt.Errorf("mesh index %d out of range (%d vertices)", idx, len(mesh.Vertices))
		}
	}

	id := makeAssetId()
	server.meshes[id] = meshAsset{version: 0, mesh: mesh}
	server.log.Debugf("loaded mesh %s: %d vertices, %d indices", id, len(mesh.Vertices), len(mesh.Indices))

	return MeshHandle{assetId: id}, nil
}

// MustLoadMesh is LoadMesh for meshes built by this package, where a
// malformed mesh is a programming error.
func (server *AssetServer) MustLoadMesh(mesh Mesh) MeshHandle {
	h, err := server.LoadMesh(mesh)
	if err != nil {
		panic(err)
	}
	return h
}

// UpdateMesh replaces a registered mesh in place, bumping its version so
// the renderer re-uploads its buffers.
func (server *AssetServer) UpdateMesh(h MeshHandle, mesh Mesh) error {
	asset, ok := server.meshes[h.assetId]
	if !ok {
		return fmt.Errorf("unknown mesh asset %s", h.assetId)
	}
	asset.mesh = mesh
	asset.version++
	server.meshes[h.assetId] = asset
	return nil
}

func (server *AssetServer) mesh(id AssetId) (meshAsset, bool) {
	asset, ok := server.meshes[id]
	return asset, ok
}
