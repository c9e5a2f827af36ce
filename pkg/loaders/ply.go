package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format      string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version     string
	VertexCount int
	FaceCount   int
	VertexProps []PLYProperty
	FaceProps   []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string
	IsList   bool
	ListType string // For list properties, the type of the count
	DataType string // For list properties, the type of the data
}

// PLYData contains the vertex positions and triangle indices of a PLY mesh.
// Polygons with more than three vertices are fan-triangulated.
type PLYData struct {
	Vertices []core.Vec3
	Faces    []int // 3 indices per triangle
}

// LoadPLY loads a PLY file and returns its vertex and face data
func LoadPLY(filename string) (*PLYData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("while opening PLY file: %w", err)
	}
	defer file.Close()

	return ReadPLY(bufio.NewReader(file))
}

// ReadPLY parses a PLY stream in ASCII or binary format.
func ReadPLY(r *bufio.Reader) (*PLYData, error) {
	header, err := parsePLYHeader(r)
	if err != nil {
		return nil, fmt.Errorf("while parsing PLY header: %w", err)
	}

	var elems plyElementReader
	switch header.Format {
	case "ascii":
		elems = &asciiReader{scanner: bufio.NewScanner(r)}
	case "binary_little_endian":
		elems = &binaryReader{r: r, order: binary.LittleEndian}
	case "binary_big_endian":
		elems = &binaryReader{r: r, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %q", header.Format)
	}

	data, err := readPLYBody(elems, header)
	if err != nil {
		return nil, fmt.Errorf("while reading PLY data: %w", err)
	}
	return data, nil
}

// parsePLYHeader reads up to and including the end_header line.
func parsePLYHeader(r *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}
	var currentElement string

	for lineNum := 0; ; lineNum++ {
		raw, err := r.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		line := strings.TrimSpace(raw)

		if lineNum == 0 {
			if line != "ply" {
				return nil, fmt.Errorf("missing ply magic number")
			}
			continue
		}
		if line == "end_header" {
			break
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", line)
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", line)
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			currentElement = parts[1]
			switch currentElement {
			case "vertex":
				header.VertexCount = count
			case "face":
				header.FaceCount = count
			default:
				// Other elements would need to be skipped in order
				if count > 0 {
					return nil, fmt.Errorf("unsupported element %q", currentElement)
				}
			}
		case "property":
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, err
			}
			switch currentElement {
			case "vertex":
				header.VertexProps = append(header.VertexProps, prop)
			case "face":
				header.FaceProps = append(header.FaceProps, prop)
			}
		default:
			return nil, fmt.Errorf("unexpected header line: %q", line)
		}
	}

	return header, nil
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		if typeSize(parts[1]) == 0 || typeSize(parts[2]) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list types %s %s", parts[1], parts[2])
		}
		return PLYProperty{IsList: true, ListType: parts[1], DataType: parts[2], Name: parts[3]}, nil
	}

	if typeSize(parts[0]) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type %s", parts[0])
	}
	return PLYProperty{Type: parts[0], Name: parts[1]}, nil
}

func typeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

const (
	// maxPrealloc caps slice capacity taken from header counts; larger
	// meshes grow by append so that a bogus count cannot exhaust memory.
	maxPrealloc = 1 << 16
	// maxListLength bounds the number of entries in one list property
	maxListLength = 1 << 16
)

// typeRange returns the values an integer PLY type can hold
func typeRange(dataType string) (lo, hi float64, ok bool) {
	switch dataType {
	case "char", "int8":
		return math.MinInt8, math.MaxInt8, true
	case "uchar", "uint8":
		return 0, math.MaxUint8, true
	case "short", "int16":
		return math.MinInt16, math.MaxInt16, true
	case "ushort", "uint16":
		return 0, math.MaxUint16, true
	case "int", "int32":
		return math.MinInt32, math.MaxInt32, true
	case "uint", "uint32":
		return 0, math.MaxUint32, true
	}
	return 0, 0, false
}

// integerValue checks that v is a whole number representable by dataType.
// Floating point types are held to the int32 range.
func integerValue(v float64, dataType string) (int, error) {
	lo, hi, ok := typeRange(dataType)
	if !ok {
		lo, hi = math.MinInt32, math.MaxInt32
	}
	if v != math.Trunc(v) || v < lo || v > hi {
		return 0, fmt.Errorf("value %v is not a valid %s", v, dataType)
	}
	return int(v), nil
}

// plyElementReader reads one scalar of the given PLY type at a time.
type plyElementReader interface {
	readScalar(dataType string) (float64, error)
}

type asciiReader struct {
	scanner *bufio.Scanner
	fields  []string
}

func (a *asciiReader) readScalar(dataType string) (float64, error) {
	for len(a.fields) == 0 {
		if !a.scanner.Scan() {
			if err := a.scanner.Err(); err != nil {
				return 0, err
			}
			return 0, io.ErrUnexpectedEOF
		}
		a.fields = strings.Fields(a.scanner.Text())
	}
	field := a.fields[0]
	a.fields = a.fields[1:]
	return strconv.ParseFloat(field, 64)
}

type binaryReader struct {
	r     io.Reader
	order binary.ByteOrder
	buf   [8]byte
}

func (b *binaryReader) readScalar(dataType string) (float64, error) {
	size := typeSize(dataType)
	buf := b.buf[:size]
	if _, err := io.ReadFull(b.r, buf); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(buf[0])), nil
	case "uchar", "uint8":
		return float64(buf[0]), nil
	case "short", "int16":
		return float64(int16(b.order.Uint16(buf))), nil
	case "ushort", "uint16":
		return float64(b.order.Uint16(buf)), nil
	case "int", "int32":
		return float64(int32(b.order.Uint32(buf))), nil
	case "uint", "uint32":
		return float64(b.order.Uint32(buf)), nil
	case "float", "float32":
		return float64(math.Float32frombits(b.order.Uint32(buf))), nil
	case "double", "float64":
		return math.Float64frombits(b.order.Uint64(buf)), nil
	}
	return 0, fmt.Errorf("unknown type %s", dataType)
}

func readPLYBody(elems plyElementReader, header *PLYHeader) (*PLYData, error) {
	xi, yi, zi := -1, -1, -1
	for i, prop := range header.VertexProps {
		switch prop.Name {
		case "x":
			xi = i
		case "y":
			yi = i
		case "z":
			zi = i
		}
	}
	if xi < 0 || yi < 0 || zi < 0 {
		return nil, fmt.Errorf("vertex element is missing x, y or z")
	}

	vertices := make([]core.Vec3, 0, min(header.VertexCount, maxPrealloc))
	values := make([]float64, len(header.VertexProps))
	for i := 0; i < header.VertexCount; i++ {
		for j, prop := range header.VertexProps {
			if prop.IsList {
				if _, err := readList(elems, prop); err != nil {
					return nil, fmt.Errorf("vertex %d: %w", i, err)
				}
				continue
			}
			v, err := elems.readScalar(prop.Type)
			if err != nil {
				return nil, fmt.Errorf("vertex %d: %w", i, err)
			}
			values[j] = v
		}
		vertices = append(vertices, core.NewVec3(values[xi], values[yi], values[zi]))
	}

	faces := make([]int, 0, 3*min(header.FaceCount, maxPrealloc))
	for i := 0; i < header.FaceCount; i++ {
		for _, prop := range header.FaceProps {
			if !prop.IsList {
				if _, err := elems.readScalar(prop.Type); err != nil {
					return nil, fmt.Errorf("face %d: %w", i, err)
				}
				continue
			}
			values, err := readList(elems, prop)
			if err != nil {
				return nil, fmt.Errorf("face %d: %w", i, err)
			}
			if prop.Name != "vertex_indices" && prop.Name != "vertex_index" {
				continue
			}
			if len(values) < 3 {
				return nil, fmt.Errorf("face %d has %d vertices", i, len(values))
			}
			indices := make([]int, len(values))
			for k, v := range values {
				idx, err := integerValue(v, prop.DataType)
				if err != nil {
					return nil, fmt.Errorf("face %d: vertex index: %w", i, err)
				}
				if idx < 0 || idx >= len(vertices) {
					return nil, fmt.Errorf("face %d references vertex %d of %d", i, idx, len(vertices))
				}
				indices[k] = idx
			}
			for k := 1; k+1 < len(indices); k++ {
				faces = append(faces, indices[0], indices[k], indices[k+1])
			}
		}
	}

	return &PLYData{Vertices: vertices, Faces: faces}, nil
}

// readList reads a list property. Entries are returned as floats so that
// non-index lists keep their values; callers convert indices.
func readList(elems plyElementReader, prop PLYProperty) ([]float64, error) {
	v, err := elems.readScalar(prop.ListType)
	if err != nil {
		return nil, err
	}
	n, err := integerValue(v, prop.ListType)
	if err != nil {
		return nil, fmt.Errorf("list length: %w", err)
	}
	if n < 0 || n > maxListLength {
		return nil, fmt.Errorf("list length %d out of range [0, %d]", n, maxListLength)
	}

	out := make([]float64, n)
	for k := range out {
		if out[k], err = elems.readScalar(prop.DataType); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// Triangles builds one triangle per face, all sharing the given material.
// Degenerate faces are skipped.
func (d *PLYData) Triangles(mat material.Material) []geometry.Shape {
	shapes := make([]geometry.Shape, 0, len(d.Faces)/3)
	for i := 0; i+2 < len(d.Faces); i += 3 {
		v0 := d.Vertices[d.Faces[i]]
		v1 := d.Vertices[d.Faces[i+1]]
		v2 := d.Vertices[d.Faces[i+2]]
		if core.NearZero(v1.Sub(v0).Cross(v2.Sub(v0))) {
			continue
		}
		shapes = append(shapes, geometry.NewTriangle(v0, v1, v2, mat))
	}
	return shapes
}
