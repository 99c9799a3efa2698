package achievements

import (
	"github.com/abhisek/mathexplorer/internal/game"
)

// ID identifies one of the fixed achievements. Values are persisted as-is.
type ID string

const (
	SumaWins1           ID = "SUMA_WINS_1"
	SumaWins5           ID = "SUMA_WINS_5"
	RestaWins1          ID = "RESTA_WINS_1"
	RestaWins5          ID = "RESTA_WINS_5"
	HighScore100        ID = "HIGH_SCORE_100"
	PerfectStreak5      ID = "PERFECT_STREAK_5"
	MultiplicacionWins1 ID = "MULTIPLICACION_WINS_1"
	MultiplicacionWins5 ID = "MULTIPLICACION_WINS_5"
	SecuenciasWins1     ID = "SECUENCIAS_WINS_1"
	SecuenciasWins5     ID = "SECUENCIAS_WINS_5"
)

// Definition describes an achievement and the counter value that unlocks it.
// Kind is set for win-count achievements and empty otherwise.
type Definition struct {
	ID          ID
	Name        string
	Description string
	Icon        string
	Target      int
	Kind        game.Kind
}

var definitions = []Definition{
	{SumaWins1, "Aprendiz de Suma", "Gana tu primera partida de Suma Veloz", "⭐", 1, game.KindAddition},
	{SumaWins5, "Campeón de Suma", "Gana 5 partidas de Suma Veloz", "🛡️", 5, game.KindAddition},
	{RestaWins1, "Cazador de Monstruos", "Gana tu primera partida de Resta el Monstruo", "⭐", 1, game.KindSubtraction},
	{RestaWins5, "Exterminador", "Gana 5 partidas de Resta el Monstruo", "🏆", 5, game.KindSubtraction},
	{HighScore100, "Cien Puntos", "Alcanza una puntuación total de 100", "🏅", 100, ""},
	{PerfectStreak5, "Racha Impecable", "Consigue 5 respuestas correctas seguidas", "🏆", 5, ""},
	{MultiplicacionWins1, "Mago Principiante", "Gana tu primera partida de Tablas Mágicas", "⭐", 1, game.KindMultiplication},
	{MultiplicacionWins5, "Archimago Matemático", "Gana 5 partidas de Tablas Mágicas", "🛡️", 5, game.KindMultiplication},
	{SecuenciasWins1, "Descifrador de Códigos", "Gana tu primera partida de Secuencias Secretas", "⭐", 1, game.KindSequences},
	{SecuenciasWins5, "Maestro de Patrones", "Gana 5 partidas de Secuencias Secretas", "🏆", 5, game.KindSequences},
}

// Definitions returns all achievement definitions in display order.
func Definitions() []Definition {
	out := make([]Definition, len(definitions))
	copy(out, definitions)
	return out
}

// AllIDs returns every achievement id in display order.
func AllIDs() []ID {
	ids := make([]ID, len(definitions))
	for i, d := range definitions {
		ids[i] = d.ID
	}
	return ids
}

// Lookup returns the definition for id.
func Lookup(id ID) (Definition, bool) {
	for _, d := range definitions {
		if d.ID == id {
			return d, true
		}
	}
	return Definition{}, false
}

// Valid reports whether id is a known achievement.
func (id ID) Valid() bool {
	_, ok := Lookup(id)
	return ok
}

// Name returns the display name, or the raw id when unknown.
func (id ID) Name() string {
	if d, ok := Lookup(id); ok {
		return d.Name
	}
	return string(id)
}

// WinAchievements returns the win-count achievements of a game kind in
// table order. Division has none.
func WinAchievements(kind game.Kind) []ID {
	var ids []ID
	for _, d := range definitions {
		if kind != "" && d.Kind == kind {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
