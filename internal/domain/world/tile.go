package world

type TileKind string

// TileTilled is the only stored kind; untilled ground is not listed.
const TileTilled TileKind = "tilled"

type Tile struct {
	Pos  Point    `json:"pos"`
	Kind TileKind `json:"kind"`
}
