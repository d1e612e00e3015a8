package slide

import (
	"math"
	"slices"

	"github.com/akmonengine/slide/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// DEFAULT_GRID_RESOLUTION is the number of cells along each horizontal axis
const DEFAULT_GRID_RESOLUTION = 50

// ============================================================================
// Types
// ============================================================================

// CellKey - Coordonnées d'une cellule dans la grille horizontale (X, Y)
type CellKey struct {
	X, Y int
}

// Cell - Conteneur de handles de triangles dans une cellule
type Cell struct {
	handles []Handle
}

// SpatialGrid - Grille 2D uniforme sur l'emprise horizontale du mesh, pour la broad phase.
// Chaque triangle est inséré dans la cellule de chacun de ses sommets et dans les 8 voisines,
// pour tolérer les triangles à cheval sur plusieurs cellules.
type SpatialGrid struct {
	resolution int
	bounds     actor.AABB
	cells      []Cell
	all        []Handle
	degenerate bool
	built      bool
}

// ============================================================================
// Constructeur
// ============================================================================

// NewSpatialGrid - Crée une grille resolution x resolution, vide jusqu'à Build
func NewSpatialGrid(resolution int) *SpatialGrid {
	return &SpatialGrid{
		resolution: max(1, resolution),
	}
}

// Build - Indexe tous les triangles. bounds doit contenir tous les sommets.
func (sg *SpatialGrid) Build(triangles []actor.Triangle, bounds actor.AABB) {
	sg.bounds = bounds
	sg.all = make([]Handle, len(triangles))
	for i := range triangles {
		sg.all[i] = Handle(i)
	}

	size := bounds.Size()
	sg.degenerate = !(size.X() > 0 && size.Y() > 0)
	sg.built = true
	if sg.degenerate {
		sg.cells = nil
		return
	}

	sg.cells = make([]Cell, sg.resolution*sg.resolution)
	for i := range triangles {
		sg.Insert(Handle(i), &triangles[i])
	}
}

// track - Enregistre un handle pour le repli sans index, avant Build
func (sg *SpatialGrid) track(h Handle) {
	sg.all = append(sg.all, h)
}

// Insert - Insère un triangle dans le bloc 3x3 autour de la cellule de chaque sommet
func (sg *SpatialGrid) Insert(h Handle, tri *actor.Triangle) {
	if sg.degenerate || sg.cells == nil {
		return
	}

	// at most 3 vertices * 9 cells
	var visited [27]int
	count := 0

	for _, vertex := range tri.Vertices() {
		center := sg.worldToCell(vertex)

		for x := center.X - 1; x <= center.X+1; x++ {
			for y := center.Y - 1; y <= center.Y+1; y++ {
				if x < 0 || y < 0 || x >= sg.resolution || y >= sg.resolution {
					continue
				}

				cellIdx := sg.cellIndex(CellKey{x, y})
				if slices.Contains(visited[:count], cellIdx) {
					continue
				}
				visited[count] = cellIdx
				count++

				sg.cells[cellIdx].handles = append(sg.cells[cellIdx].handles, h)
			}
		}
	}
}

// CandidatesNear - Triangles enregistrés dans la cellule contenant position.
// Les handles sont triés; le slice retourné ne doit pas être modifié.
// Sans index (grille non construite ou emprise dégénérée), retourne tous les triangles.
func (sg *SpatialGrid) CandidatesNear(position mgl64.Vec3) []Handle {
	if !sg.built || sg.degenerate {
		return sg.all
	}

	return sg.cells[sg.cellIndex(sg.worldToCell(position))].handles
}

// Candidates - Union triée et sans doublon des cellules de toutes les positions
func (sg *SpatialGrid) Candidates(positions ...mgl64.Vec3) []Handle {
	if !sg.built || sg.degenerate {
		return sg.all
	}
	if len(positions) == 0 {
		return nil
	}

	first := sg.cellIndex(sg.worldToCell(positions[0]))
	same := true
	for _, position := range positions[1:] {
		if sg.cellIndex(sg.worldToCell(position)) != first {
			same = false
			break
		}
	}
	if same {
		return sg.cells[first].handles
	}

	var handles []Handle
	for _, position := range positions {
		handles = append(handles, sg.CandidatesNear(position)...)
	}
	slices.Sort(handles)

	return slices.Compact(handles)
}

// Resolution returns the number of cells along each axis
func (sg *SpatialGrid) Resolution() int {
	return sg.resolution
}

// Degenerate reports whether the grid fell back to the whole triangle list
func (sg *SpatialGrid) Degenerate() bool {
	return sg.degenerate
}

// CellAt returns the cell containing position
func (sg *SpatialGrid) CellAt(position mgl64.Vec3) CellKey {
	return sg.worldToCell(position)
}

// worldToCell - Convertit une position monde en coordonnées de cellule, bornées à la grille
func (sg *SpatialGrid) worldToCell(pos mgl64.Vec3) CellKey {
	size := sg.bounds.Size()

	return CellKey{
		X: sg.axisToCell(pos.X()-sg.bounds.Min.X(), size.X()),
		Y: sg.axisToCell(pos.Y()-sg.bounds.Min.Y(), size.Y()),
	}
}

func (sg *SpatialGrid) axisToCell(offset, size float64) int {
	if !(size > 0) {
		return 0
	}

	cell := math.Floor(offset / size * float64(sg.resolution))
	if !(cell > 0) {
		// also catches NaN
		return 0
	}
	if cell >= float64(sg.resolution) {
		return sg.resolution - 1
	}

	return int(cell)
}

// cellIndex - Index de la cellule dans le tableau
func (sg *SpatialGrid) cellIndex(key CellKey) int {
	return key.Y*sg.resolution + key.X
}
