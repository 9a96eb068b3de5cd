package tournament

import "sort"

func ParseMedal(v string) (Medal, bool) {
	switch m := Medal(v); m {
	case MedalWinner, MedalRunnerUp, MedalTop4, MedalTop8:
		return m, true
	default:
		return "", false
	}
}

func ParseStructure(v string) (Structure, bool) {
	switch s := Structure(v); s {
	case StructureSingleElimination, StructureSwissBlossom, StructureSwiss, StructureLeague, StructureLeagueMatch:
		return s, true
	default:
		return "", false
	}
}

func ParseArchetype(v string) (Archetype, bool) {
	switch a := Archetype(v); a {
	case ArchetypeAggro, ArchetypeControl, ArchetypeCombo, ArchetypeAggroControl, ArchetypeAggroCombo,
		ArchetypeComboControl, ArchetypeRamp, ArchetypeMidrange, ArchetypeUnclassified:
		return a, true
	default:
		return "", false
	}
}

func ParseWins(v int) (Wins, bool) {
	switch w := Wins(v); w {
	case WinsZero, WinsOne, WinsTwo:
		return w, true
	default:
		return 0, false
	}
}

func ParseTiming(v int) (Timing, bool) {
	switch t := Timing(v); t {
	case TimingMain, TimingFinals:
		return t, true
	default:
		return 0, false
	}
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
