// Package item implements item identity, generation and placement.
package item

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
)

// Kind is the category of an item.
type Kind uint8

const (
	Armor Kind = iota
	Custom
	Gold
	Potion
	Ring
	Scroll
	Stick
	Weapon
)

var kindNames = [...]string{
	Armor:  "armor",
	Custom: "custom",
	Gold:   "gold",
	Potion: "potion",
	Ring:   "ring",
	Scroll: "scroll",
	Stick:  "stick",
	Weapon: "weapon",
}

// Kinds returns every item kind in declaration order.
func Kinds() []Kind {
	return []Kind{Armor, Custom, Gold, Potion, Ring, Scroll, Stick, Weapon}
}

// String returns the lowercase name of the kind.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if int(k) >= len(kindNames) {
		return nil, fmt.Errorf("item: unknown kind %d", uint8(k))
	}
	return []byte(kindNames[k]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	name := strings.ToLower(string(text))
	for i, n := range kindNames {
		if n == name {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("item: unknown kind %q", text)
}

// Numbered builds an item of this kind with its default attributes.
// Only gold is supported so far.
func (k Kind) Numbered(num Num) (Item, error) {
	switch k {
	case Gold:
		return Item{Kind: k, Num: num}, nil
	default:
		return Item{}, gameerr.Newf(gameerr.UnsupportedKind, "no default attributes for %s", k)
	}
}

// Tile returns the glyph drawn for items of this kind.
func (k Kind) Tile() (core.Tile, error) {
	switch k {
	case Gold:
		return core.TileGold, nil
	case Weapon:
		return core.TileWeapon, nil
	default:
		return core.TileNone, gameerr.Newf(gameerr.UnsupportedKind, "no tile for %s", k)
	}
}

// Num is an item quantity.
type Num uint32

// Attr is a set of item attributes.
type Attr uint32

const (
	// Cursed items can't be dropped once picked up.
	Cursed Attr = 1 << iota
	// Throwable items can be thrown.
	Throwable
	// Many marks stackable items: two sets of them merge into one.
	Many
)

// Union returns the attributes present in a or b.
func (a Attr) Union(b Attr) Attr { return a | b }

// Intersect returns the attributes present in both a and b.
func (a Attr) Intersect(b Attr) Attr { return a & b }

// Has reports whether every attribute in b is set in a.
func (a Attr) Has(b Attr) bool { return a&b == b }

// String lists the set attributes, e.g. "cursed|many".
func (a Attr) String() string {
	var parts []string
	if a.Has(Cursed) {
		parts = append(parts, "cursed")
	}
	if a.Has(Throwable) {
		parts = append(parts, "throwable")
	}
	if a.Has(Many) {
		parts = append(parts, "many")
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "|")
}

// AttrMerger combines the attributes of two merged items.
type AttrMerger func(a, b Attr) Attr

// ID identifies an item within one Handler.
type ID uint32

// Item is a unique item.
type Item struct {
	Kind Kind `json:"kind"`
	Num  Num  `json:"num"`
	Attr Attr `json:"attr"`
}

// Merge returns the sum of two items of the same kind. Attributes are
// combined with merger, or by union when merger is nil.
func (it Item) Merge(other Item, merger AttrMerger) (Item, error) {
	if it.Kind != other.Kind {
		return it, gameerr.Newf(gameerr.LogicError, "can't merge %s into %s", other.Kind, it.Kind)
	}
	if merger == nil {
		merger = Attr.Union
	}
	return Item{
		Kind: it.Kind,
		Num:  it.Num + other.Num,
		Attr: merger(it.Attr, other.Attr),
	}, nil
}

// Many returns the item marked as stackable.
func (it Item) Many() Item {
	it.Attr |= Many
	return it
}

// Tile returns the glyph of the item.
func (it Item) Tile() (core.Tile, error) {
	return it.Kind.Tile()
}

// String returns a short description such as "12 gold".
func (it Item) String() string {
	return fmt.Sprintf("%d %s", it.Num, it.Kind)
}
