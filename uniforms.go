package lumen

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"reflect"
)

// GPU-side mirror of FragmentArgs: the light count occupies a full
// 16-byte uniform slot.
type fragmentArgsUniform struct {
	LightCount uint32
	Pad0       uint32
	Pad1       uint32
	Pad2       uint32
}

// PackCameraBlock serializes the camera uniform block: projection matrix
// followed by view matrix, 128 bytes.
func PackCameraBlock(b CameraBlock) []byte {
	return toBufferBytes(b)
}

// PackModelBlock serializes the model uniform block, 64 bytes.
func PackModelBlock(b ModelBlock) []byte {
	return toBufferBytes(b)
}

// PackMaterialBlock serializes the material uniform block: emissive then
// effect, 32 bytes.
func PackMaterialBlock(b MaterialBlock) []byte {
	return toBufferBytes(b)
}

// PackFragmentArgs serializes the fragment-args uniform block, padded to
// a full 16-byte slot.
func PackFragmentArgs(args FragmentArgs) []byte {
	return toBufferBytes(fragmentArgsUniform{LightCount: args.LightCount})
}

// PackLightsBlock serializes the lights uniform block: 16 records of
// {propagation, center, color}, 768 bytes. Field order is part of the
// binary contract with the shader.
func PackLightsBlock(lights [MaxLights]Light) []byte {
	return toBufferBytes(lights)
}

// toBufferBytes walks a uniform value and serializes its fields in
// declaration order, little-endian, with no implicit padding. Uniform
// structs are declared so that their Go layout already matches the
// shader-side layout.
func toBufferBytes(data any) []byte {
	val := reflect.ValueOf(data)
	buf := new(bytes.Buffer)
	readUniformBytes(val, buf)
	return buf.Bytes()
}

func readUniformBytes(field reflect.Value, buf *bytes.Buffer) {
	switch field.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < field.Len(); i++ {
			elem := field.Index(i)
			if elem.Kind() == reflect.Ptr {
				elem = elem.Elem()
			}
			if elem.Kind() == reflect.Struct {
				readUniformBytes(elem, buf)
			} else {
				if err := binary.Write(buf, binary.LittleEndian, elem.Interface()); err != nil {
					panic(fmt.Errorf("failed to write slice element: %w", err))
				}
			}
		}

	case reflect.Struct:
		for i := 0; i < field.NumField(); i++ {
			readUniformBytes(field.Field(i), buf)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32,
		reflect.Int8, reflect.Int16, reflect.Int32,
		reflect.Float32:
		if err := binary.Write(buf, binary.LittleEndian, field.Interface()); err != nil {
			panic(fmt.Errorf("failed to write scalar field: %w", err))
		}

	default:
		panic(fmt.Errorf("unsupported uniform type: %v", field))
	}
}
