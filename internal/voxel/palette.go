// Package voxel holds the voxel palette (the registry of voxel types) and
// the Amanatides-Woo ray traversal used for block picking.
package voxel

import "fmt"

// ID is a palette index. 0 is always Air; 255 is the reserved
// OutOfBounds sentinel and is never assigned to a registered descriptor.
type ID = uint8

// OutOfBounds is returned by any voxel lookup that crosses outside the
// loaded grid.
const OutOfBounds ID = 255

// maxEntries caps the palette at 254 descriptors (ids 0-253), so id 255 is
// never handed out to a real descriptor; it stays reserved for OutOfBounds.
const maxEntries = 254

// Face names the six faces of a voxel, in the fixed order descriptors
// store their tile indices.
type Face int

const (
	Top Face = iota
	Bottom
	North
	South
	East
	West
)

// Style controls how the mesher treats a voxel: as an axis-aligned quad,
// a billboard cross, or not at all.
type Style int

const (
	StyleVoxel Style = iota
	StyleCross
	StyleNone
)

// Type is the coarse material classification used by face-visibility and
// AO-occlusion rules.
type Type int

const (
	Solid Type = iota
	Liquid
	Gas
	Detail
)

// Common names the handful of voxel kinds every caller expects to exist by
// name, resolved once at palette construction time to avoid repeated
// string lookups.
type Common int

const (
	CommonAir Common = iota
	CommonStone
	CommonSand
	CommonWater
	CommonDirt
	CommonGrass
)

// Descriptor is one entry of the palette.
type Descriptor struct {
	ID         ID
	Name       string
	Collidable bool
	Style      Style
	Type       Type
	TileIDs    [6]uint16
}

// outOfBoundsDescriptor is handed back by DescriptorOf for the sentinel
// id; it carries no mesh and never collides.
var outOfBoundsDescriptor = Descriptor{
	ID:         OutOfBounds,
	Name:       "out_of_bounds",
	Collidable: false,
	Style:      StyleNone,
	Type:       Gas,
}

// OverflowError is returned by Add once the palette has reached its
// maximum capacity.
type OverflowError struct {
	Attempted string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("voxel palette: cannot register %q, palette is full (%d entries)", e.Attempted, maxEntries)
}

// UnknownNameError is returned by IDOf for a name that was never
// registered.
type UnknownNameError struct {
	Name string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("voxel palette: unknown voxel name %q", e.Name)
}

// Palette is an append-only registry mapping names to dense, small integer
// ids. Once constructed it supports O(1) lookup by id and by name.
type Palette struct {
	byID    []Descriptor
	byName  map[string]ID
	commons map[Common]ID
}

// NewPalette returns an empty palette ready to have Air registered first.
func NewPalette() *Palette {
	return &Palette{
		byID:    make([]Descriptor, 0, maxEntries),
		byName:  make(map[string]ID, maxEntries),
		commons: make(map[Common]ID, 6),
	}
}

// Add appends a new descriptor and returns the id it was assigned. The
// descriptor's ID field is overwritten with the assigned id.
func (p *Palette) Add(d Descriptor) (ID, error) {
	if len(p.byID) >= maxEntries {
		return 0, &OverflowError{Attempted: d.Name}
	}
	id := ID(len(p.byID))
	d.ID = id
	p.byID = append(p.byID, d)
	p.byName[d.Name] = id
	return id, nil
}

// BindCommon associates a Common enumerator with an already-registered id,
// so later lookups by IDOfCommon are O(1) without a name lookup.
func (p *Palette) BindCommon(c Common, id ID) {
	p.commons[c] = id
}

// IDOf resolves a voxel name to its id.
func (p *Palette) IDOf(name string) (ID, error) {
	id, ok := p.byName[name]
	if !ok {
		return 0, &UnknownNameError{Name: name}
	}
	return id, nil
}

// IDOfCommon resolves one of the well-known voxel kinds. Panics if the
// palette was never populated with DefaultLoad or an equivalent explicit
// BindCommon call, since that indicates a construction bug rather than a
// recoverable runtime condition.
func (p *Palette) IDOfCommon(c Common) ID {
	id, ok := p.commons[c]
	if !ok {
		panic(fmt.Sprintf("voxel palette: common %d was never bound", c))
	}
	return id
}

// DescriptorOf returns the descriptor for id, or the out-of-bounds
// descriptor if id is the sentinel or otherwise unregistered.
func (p *Palette) DescriptorOf(id ID) Descriptor {
	if id == OutOfBounds || int(id) >= len(p.byID) {
		return outOfBoundsDescriptor
	}
	return p.byID[id]
}

// Len returns the number of registered descriptors.
func (p *Palette) Len() int {
	return len(p.byID)
}

// DefaultLoad populates a fresh palette with air, water, sand, stone,
// dirt, grass, and three decorative detail entries, matching the
// original terrain generator's tile layout. Air is registered first so it
// receives id 0.
func DefaultLoad() (*Palette, error) {
	p := NewPalette()

	type seed struct {
		common     Common
		descriptor Descriptor
	}

	seeds := []seed{
		{CommonAir, Descriptor{Name: "air", Collidable: false, Style: StyleNone, Type: Gas}},
		{CommonWater, Descriptor{Name: "water", Collidable: false, Style: StyleVoxel, Type: Liquid, TileIDs: [6]uint16{17, 17, 17, 17, 17, 17}}},
		{CommonSand, Descriptor{Name: "sand", Collidable: true, Style: StyleVoxel, Type: Solid, TileIDs: [6]uint16{1, 1, 1, 1, 1, 1}}},
		{CommonStone, Descriptor{Name: "stone", Collidable: true, Style: StyleVoxel, Type: Solid, TileIDs: [6]uint16{9, 9, 9, 9, 9, 9}}},
		{CommonDirt, Descriptor{Name: "dirt", Collidable: true, Style: StyleVoxel, Type: Solid, TileIDs: [6]uint16{0, 0, 0, 0, 0, 0}}},
		{CommonGrass, Descriptor{Name: "grass", Collidable: true, Style: StyleVoxel, Type: Solid, TileIDs: [6]uint16{16, 0, 8, 8, 8, 8}}},
	}

	for _, s := range seeds {
		id, err := p.Add(s.descriptor)
		if err != nil {
			return nil, err
		}
		p.BindCommon(s.common, id)
	}

	details := []Descriptor{
		{Name: "sand_grass", Collidable: false, Style: StyleCross, Type: Detail, TileIDs: [6]uint16{7, 7, 7, 7, 7, 7}},
		{Name: "short_grass_01", Collidable: false, Style: StyleCross, Type: Detail, TileIDs: [6]uint16{15, 0, 0, 0, 0, 0}},
		{Name: "short_grass_02", Collidable: false, Style: StyleCross, Type: Detail, TileIDs: [6]uint16{23, 0, 0, 0, 0, 0}},
	}
	for _, d := range details {
		if _, err := p.Add(d); err != nil {
			return nil, err
		}
	}

	return p, nil
}
