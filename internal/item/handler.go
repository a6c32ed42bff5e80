package item

import (
	"io"
	"iter"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-rogue/internal/core"
	"github.com/vovakirdan/tui-rogue/internal/gameerr"
	"github.com/vovakirdan/tui-rogue/internal/rng"
)

type placement struct {
	path core.Path
	id   ID
}

// Handler generates and manages all items of a session.
//
// Every path in the placement index refers to a live registry entry.
// IDs are issued in strictly increasing order and never reused.
type Handler struct {
	items map[ID]Item
	// placed is kept sorted by path so that a level's items are adjacent.
	placed []placement
	config Config
	rng    *rng.Handle
	nextID ID
	logger *log.Logger
}

// NewHandler creates a handler. The same (config, seed) pair always yields
// the same generation sequence.
func NewHandler(config Config, seed uint64) *Handler {
	return &Handler{
		items:  make(map[ID]Item),
		config: config,
		rng:    rng.New(seed, rng.StreamItems),
		logger: log.New(io.Discard),
	}
}

// SetLogger sets the logger used for generation events.
func (h *Handler) SetLogger(l *log.Logger) {
	if l != nil {
		h.logger = l
	}
}

// Config returns the generation settings.
func (h *Handler) Config() Config {
	return h.config
}

// Len returns the number of registered items, placed or not.
func (h *Handler) Len() int {
	return len(h.items)
}

// Get returns a registered item by id.
func (h *Handler) Get(id ID) (Item, bool) {
	it, ok := h.items[id]
	return it, ok
}

// GetRef returns the item placed at path.
func (h *Handler) GetRef(path core.Path) (Item, bool) {
	i, ok := h.find(path)
	if !ok {
		return Item{}, false
	}
	return h.Get(h.placed[i].id)
}

// Placed yields placed items in path order.
func (h *Handler) Placed() iter.Seq2[core.Path, Item] {
	return func(yield func(core.Path, Item) bool) {
		for _, p := range h.placed {
			if !yield(p.path, h.items[p.id]) {
				return
			}
		}
	}
}

// TakeAt removes the item at path from the world. The registry keeps the
// entry, so the id stays valid for whoever picked it up.
func (h *Handler) TakeAt(path core.Path) (ID, Item, bool) {
	i, ok := h.find(path)
	if !ok {
		return 0, Item{}, false
	}
	id := h.placed[i].id
	h.placed = slices.Delete(h.placed, i, i+1)
	h.logger.Debug("item taken", "id", id, "path", path)
	return id, h.items[id], true
}

// SetupGold puts gold into one room of the given level if the gold policy
// says so. emptyCell is asked for a vacant cell before the item is
// registered, so a failing supplier leaves the handler unchanged apart from
// the policy's random draws.
func (h *Handler) SetupGold(level uint32, emptyCell func() (core.Coord, error)) error {
	num, ok := h.config.Gold.gen(h.rng, level)
	if !ok {
		return nil
	}
	pos, err := emptyCell()
	if err != nil {
		return gameerr.Wrap(err, "in Handler::SetupGold")
	}
	gold, err := Gold.Numbered(num)
	if err != nil {
		return gameerr.Wrap(err, "in Handler::SetupGold")
	}
	id := h.genItem(func() Item { return gold.Many() })
	h.placeItem(core.NewPath(level, pos), id)
	return nil
}

// Put registers it and places it at path in one step.
func (h *Handler) Put(path core.Path, it Item) ID {
	id := h.genItem(func() Item { return it })
	h.placeItem(path, id)
	return id
}

// genItem registers the item built by factory under the next id.
func (h *Handler) genItem(factory func() Item) ID {
	it := factory()
	id := h.nextID
	h.items[id] = it
	h.nextID++
	h.logger.Debug("item generated", "id", id, "item", it)
	return id
}

// placeItem records id as the occupant of path. The last write wins.
func (h *Handler) placeItem(path core.Path, id ID) {
	i, ok := h.find(path)
	if ok {
		h.placed[i].id = id
		return
	}
	h.placed = slices.Insert(h.placed, i, placement{path: path, id: id})
}

func (h *Handler) find(path core.Path) (int, bool) {
	return slices.BinarySearchFunc(h.placed, path, func(p placement, target core.Path) int {
		return p.path.Compare(target)
	})
}

// PlacedEntry is one placed item in a Snapshot.
type PlacedEntry struct {
	Path core.Path `json:"path"`
	ID   ID        `json:"id"`
}

// Snapshot captures the handler state for determinism checks and save data.
type Snapshot struct {
	Items    map[ID]Item   `json:"items"`
	Placed   []PlacedEntry `json:"placed"`
	NextID   ID            `json:"next_id"`
	RNGState []byte        `json:"rng_state"`
}

// Snapshot returns a copy of the current state.
func (h *Handler) Snapshot() Snapshot {
	placed := make([]PlacedEntry, len(h.placed))
	for i, p := range h.placed {
		placed[i] = PlacedEntry{Path: p.path, ID: p.id}
	}
	// PCG state encoding can't fail.
	state, _ := h.rng.MarshalBinary()
	return Snapshot{
		Items:    maps.Clone(h.items),
		Placed:   placed,
		NextID:   h.nextID,
		RNGState: state,
	}
}

// Restore replaces the handler state with a snapshot. A snapshot whose ids
// reach NextID, whose placements point at unknown ids, or which places two
// items on one path is rejected and the handler is left unchanged.
func (h *Handler) Restore(s Snapshot) error {
	for id := range s.Items {
		if id >= s.NextID {
			return gameerr.Wrap(gameerr.Newf(gameerr.LogicError,
				"item id %d is not below next id %d", id, s.NextID), "in Handler::Restore")
		}
	}
	placed := make([]placement, len(s.Placed))
	for i, p := range s.Placed {
		if _, ok := s.Items[p.ID]; !ok {
			return gameerr.Wrap(gameerr.Newf(gameerr.LogicError,
				"placed item %d at %s is not registered", p.ID, p.Path), "in Handler::Restore")
		}
		placed[i] = placement{path: p.Path, id: p.ID}
	}
	slices.SortFunc(placed, func(a, b placement) int { return a.path.Compare(b.path) })
	for i := 1; i < len(placed); i++ {
		if placed[i].path == placed[i-1].path {
			return gameerr.Wrap(gameerr.Newf(gameerr.LogicError,
				"two items placed at %s", placed[i].path), "in Handler::Restore")
		}
	}
	if err := h.rng.UnmarshalBinary(s.RNGState); err != nil {
		return gameerr.Wrap(gameerr.New(gameerr.LogicError, err.Error()), "in Handler::Restore")
	}
	h.items = maps.Clone(s.Items)
	if h.items == nil {
		h.items = make(map[ID]Item)
	}
	h.placed = placed
	h.nextID = s.NextID
	return nil
}
