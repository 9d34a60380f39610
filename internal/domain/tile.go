package domain

// TileKind — закрытое перечисление типов тайлов.
type TileKind uint8

const (
	TileFloor TileKind = iota
	TileWall
	TileLowWall
	TileDoor
	TileLockedDoor
	TileExit
	TileWater
	TilePit
	TileFullCover
	TileHalfCover
	TileStairsUp
	TileStairsDown
	TileDebris
	TileTerminal
	TileContainer

	// TileVoid — "ничто" за границей карты. В авторских данных не встречается,
	// возвращается только для запросов вне границ: непроходим и непрозрачен,
	// чтобы ошибка границы деградировала в "туда нельзя", а не в панику.
	TileVoid

	tileKindCount
)

var tileNames = [tileKindCount]string{
	"floor", "wall", "low_wall", "door", "locked_door", "exit",
	"water", "pit", "full_cover", "half_cover", "stairs_up", "stairs_down",
	"debris", "terminal", "container", "void",
}

func (k TileKind) String() string {
	if k >= tileKindCount {
		return "void"
	}
	return tileNames[k]
}

// TileProps — неизменяемые свойства типа тайла.
type TileProps struct {
	Walkable          bool
	BlocksSight       bool
	BlocksProjectiles bool
	// MoveCost: 0 — непроходимо, 1 — обычно, 2 — медленно.
	MoveCost     int
	Interactable bool
	// Cover: 0 — нет укрытия, 1 — половинное, 2 — полное.
	Cover int
}

// tileTable — авторская таблица свойств. Полные укрытия и стены непроходимы;
// Cover > 0 у проходимого тайла есть только у обломков.
var tileTable = [tileKindCount]TileProps{
	TileFloor:      {Walkable: true, MoveCost: 1},
	TileWall:       {BlocksSight: true, BlocksProjectiles: true},
	TileLowWall:    {BlocksProjectiles: false, Cover: 1},
	TileDoor:       {Walkable: true, MoveCost: 1, Interactable: true},
	TileLockedDoor: {BlocksSight: true, BlocksProjectiles: true, Interactable: true},
	TileExit:       {Walkable: true, MoveCost: 1, Interactable: true},
	TileWater:      {Walkable: true, MoveCost: 2},
	TilePit:        {},
	TileFullCover:  {BlocksSight: true, BlocksProjectiles: true, Cover: 2},
	TileHalfCover:  {BlocksProjectiles: false, Cover: 1},
	TileStairsUp:   {Walkable: true, MoveCost: 1, Interactable: true},
	TileStairsDown: {Walkable: true, MoveCost: 1, Interactable: true},
	TileDebris:     {Walkable: true, MoveCost: 2, Cover: 1},
	TileTerminal:   {Interactable: true},
	TileContainer:  {BlocksProjectiles: false, Interactable: true, Cover: 1},
	TileVoid:       {BlocksSight: true, BlocksProjectiles: true},
}

// Props возвращает свойства типа. Неизвестные значения сводятся к TileVoid.
func (k TileKind) Props() TileProps {
	if k >= tileKindCount {
		return tileTable[TileVoid]
	}
	return tileTable[k]
}
