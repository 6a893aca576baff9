package glbackend

import (
	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/gogpu/gputypes"
)

// attribFormat is how a vertex attribute is fed to glVertexAttrib*Pointer.
type attribFormat struct {
	size       int32
	xtype      uint32
	normalized bool
	integer    bool
}

func vertexAttribFormat(f gputypes.VertexFormat) (attribFormat, bool) {
	switch f {
	case gputypes.VertexFormatFloat32:
		return attribFormat{size: 1, xtype: gl.FLOAT}, true
	case gputypes.VertexFormatFloat32x2:
		return attribFormat{size: 2, xtype: gl.FLOAT}, true
	case gputypes.VertexFormatFloat32x3:
		return attribFormat{size: 3, xtype: gl.FLOAT}, true
	case gputypes.VertexFormatFloat32x4:
		return attribFormat{size: 4, xtype: gl.FLOAT}, true
	case gputypes.VertexFormatUnorm8x4:
		return attribFormat{size: 4, xtype: gl.UNSIGNED_BYTE, normalized: true}, true
	case gputypes.VertexFormatUint32:
		return attribFormat{size: 1, xtype: gl.UNSIGNED_INT, integer: true}, true
	case gputypes.VertexFormatUint32x2:
		return attribFormat{size: 2, xtype: gl.UNSIGNED_INT, integer: true}, true
	case gputypes.VertexFormatUint32x4:
		return attribFormat{size: 4, xtype: gl.UNSIGNED_INT, integer: true}, true
	}
	return attribFormat{}, false
}

func primitiveMode(t gputypes.PrimitiveTopology) uint32 {
	switch t {
	case gputypes.PrimitiveTopologyPointList:
		return gl.POINTS
	case gputypes.PrimitiveTopologyLineList:
		return gl.LINES
	case gputypes.PrimitiveTopologyLineStrip:
		return gl.LINE_STRIP
	case gputypes.PrimitiveTopologyTriangleStrip:
		return gl.TRIANGLE_STRIP
	}
	return gl.TRIANGLES
}

func indexType(f gputypes.IndexFormat) uint32 {
	if f == gputypes.IndexFormatUint32 {
		return gl.UNSIGNED_INT
	}
	return gl.UNSIGNED_SHORT
}

func frontFace(f gputypes.FrontFace) uint32 {
	if f == gputypes.FrontFaceCW {
		return gl.CW
	}
	return gl.CCW
}

func cullFace(m gputypes.CullMode) uint32 {
	if m == gputypes.CullModeFront {
		return gl.FRONT
	}
	return gl.BACK
}

func blendFactor(f gputypes.BlendFactor) uint32 {
	switch f {
	case gputypes.BlendFactorZero:
		return gl.ZERO
	case gputypes.BlendFactorSrc:
		return gl.SRC_COLOR
	case gputypes.BlendFactorOneMinusSrc:
		return gl.ONE_MINUS_SRC_COLOR
	case gputypes.BlendFactorSrcAlpha:
		return gl.SRC_ALPHA
	case gputypes.BlendFactorOneMinusSrcAlpha:
		return gl.ONE_MINUS_SRC_ALPHA
	case gputypes.BlendFactorDst:
		return gl.DST_COLOR
	case gputypes.BlendFactorOneMinusDst:
		return gl.ONE_MINUS_DST_COLOR
	case gputypes.BlendFactorDstAlpha:
		return gl.DST_ALPHA
	case gputypes.BlendFactorOneMinusDstAlpha:
		return gl.ONE_MINUS_DST_ALPHA
	case gputypes.BlendFactorSrcAlphaSaturated:
		return gl.SRC_ALPHA_SATURATE
	case gputypes.BlendFactorConstant:
		return gl.CONSTANT_COLOR
	case gputypes.BlendFactorOneMinusConstant:
		return gl.ONE_MINUS_CONSTANT_COLOR
	}
	return gl.ONE
}

func blendEquation(op gputypes.BlendOperation) uint32 {
	switch op {
	case gputypes.BlendOperationSubtract:
		return gl.FUNC_SUBTRACT
	case gputypes.BlendOperationReverseSubtract:
		return gl.FUNC_REVERSE_SUBTRACT
	case gputypes.BlendOperationMin:
		return gl.MIN
	case gputypes.BlendOperationMax:
		return gl.MAX
	}
	return gl.FUNC_ADD
}

// textureFormat returns the internal format, pixel format and type for an
// 8-bit RGBA upload.
func textureFormat(f gputypes.TextureFormat) (internal int32, format, xtype uint32, ok bool) {
	switch f {
	case gputypes.TextureFormatRGBA8Unorm:
		return gl.RGBA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case gputypes.TextureFormatRGBA8UnormSrgb:
		return gl.SRGB8_ALPHA8, gl.RGBA, gl.UNSIGNED_BYTE, true
	case gputypes.TextureFormatBGRA8Unorm:
		return gl.RGBA8, gl.BGRA, gl.UNSIGNED_BYTE, true
	case gputypes.TextureFormatBGRA8UnormSrgb:
		return gl.SRGB8_ALPHA8, gl.BGRA, gl.UNSIGNED_BYTE, true
	}
	return 0, 0, 0, false
}

func filterMode(f gputypes.FilterMode) int32 {
	if f == gputypes.FilterModeNearest {
		return gl.NEAREST
	}
	return gl.LINEAR
}
