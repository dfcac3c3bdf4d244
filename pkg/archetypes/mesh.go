package archetypes

import (
	"github.com/argus-labs/loggable/pkg/archetype"
	"github.com/argus-labs/loggable/pkg/component"
	c "github.com/argus-labs/loggable/pkg/components"
	"github.com/rotisserie/eris"
)

//nolint:gochecknoglobals // schemas are immutable
var (
	Asset3DSchema = define("Asset3D",
		required[c.Blob]("blob"),
		recommended[c.MediaType]("media_type"),
		optional[c.AlbedoFactor]("albedo_factor"),
	)

	Mesh3DSchema = define("Mesh3D",
		required[c.Position3D]("vertex_positions"),
		recommended[c.TriangleIndices]("triangle_indices"),
		recommended[c.Vector3D]("vertex_normals"),
		optional[c.Color]("vertex_colors"),
		optional[c.Texcoord2D]("vertex_texcoords"),
		optional[c.AlbedoFactor]("albedo_factor"),
		optional[c.ClassID]("class_ids"),
	)
)

// Asset3DOptions holds the non-required components of Asset3D.
type Asset3DOptions struct {
	MediaType    component.Input[c.MediaType]
	AlbedoFactor component.Input[c.AlbedoFactor]
}

// NewAsset3D returns an encoded 3D asset such as a glTF or OBJ file.
func NewAsset3D(blob c.Blob, opts Asset3DOptions) (*archetype.Instance, error) {
	b := archetype.NewBuilder(Asset3DSchema)
	archetype.Add(b, component.Splat(blob))
	archetype.Add(b, opts.MediaType)
	archetype.Add(b, opts.AlbedoFactor)
	return b.Build()
}

// NewAsset3DFromPath is NewAsset3D with the media type guessed from the extension of path, unless
// opts already sets one.
func NewAsset3DFromPath(path string, blob c.Blob, opts Asset3DOptions) (*archetype.Instance, error) {
	if opts.MediaType.IsAbsent() {
		if media := c.GuessMediaType(path); media != "" {
			opts.MediaType = component.Splat(media)
		}
	}
	return NewAsset3D(blob, opts)
}

// Mesh3DOptions holds the non-required components of Mesh3D. Per-vertex components match the
// vertex positions in length. TriangleIndices is a single index buffer for the whole mesh, logged
// as a splat. Without it every three consecutive vertices form a triangle.
type Mesh3DOptions struct {
	TriangleIndices c.TriangleIndices
	VertexNormals   component.Input[c.Vector3D]
	VertexColors    component.Input[c.Color]
	VertexTexcoords component.Input[c.Texcoord2D]
	AlbedoFactor    component.Input[c.AlbedoFactor]
	ClassIDs        component.Input[c.ClassID]
}

// NewMesh3D returns a triangle mesh. Every triangle index must refer to one of the vertices.
func NewMesh3D(vertices component.Input[c.Position3D], opts Mesh3DOptions) (*archetype.Instance, error) {
	for i, tri := range opts.TriangleIndices {
		for _, v := range tri {
			if int(v) >= vertices.Len() {
				return nil, eris.Wrapf(archetype.ErrInconsistentBatchLength,
					"triangle %d refers to vertex %d, mesh has %d vertices", i, v, vertices.Len())
			}
		}
	}

	b := archetype.NewBuilder(Mesh3DSchema)
	archetype.Add(b, vertices)
	if opts.TriangleIndices != nil {
		archetype.Add(b, component.Splat(opts.TriangleIndices))
	}
	archetype.Add(b, opts.VertexNormals)
	archetype.Add(b, opts.VertexColors)
	archetype.Add(b, opts.VertexTexcoords)
	archetype.Add(b, opts.AlbedoFactor)
	archetype.Add(b, opts.ClassIDs)
	return b.Build()
}
