package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Panel labels stay as their en-US abbreviations in every language; they are
// printed on the hardware mock-up.
var catalog = map[language.Tag]map[string]string{
	language.German: {
		"tick %d  %v\n":          "Takt %d  %v\n",
		"Metric":                 "Kennzahl",
		"Value":                  "Wert",
		"Ticks":                  "Takte",
		"Cycles":                 "Zyklen",
		"Slot 2 fill rate":       "Belegung Slot 2",
		"Slot 3 fill rate":       "Belegung Slot 3",
		"Mean ALU occupancy":     "Mittlere ALU-Belegung",
		"Memory ones ratio":      "Anteil Einsen im Speicher",
		"DUPL on":                "DUPL an",
		"ALU FULL on":            "ALU FULL an",
		"MEM CHAOS on":           "MEM CHAOS an",
		"CNT OVF on":             "CNT OVF an",
		"ALU occupancy per tick": "ALU-Belegung je Takt",
	},
	language.French: {
		"tick %d  %v\n":          "cycle %d  %v\n",
		"Metric":                 "Mesure",
		"Value":                  "Valeur",
		"Ticks":                  "Tops",
		"Cycles":                 "Cycles",
		"Slot 2 fill rate":       "Remplissage slot 2",
		"Slot 3 fill rate":       "Remplissage slot 3",
		"Mean ALU occupancy":     "Occupation ALU moyenne",
		"Memory ones ratio":      "Proportion de uns en mémoire",
		"DUPL on":                "DUPL actif",
		"ALU FULL on":            "ALU FULL actif",
		"MEM CHAOS on":           "MEM CHAOS actif",
		"CNT OVF on":             "CNT OVF actif",
		"ALU occupancy per tick": "Occupation ALU par top",
	},
}

func init() {
	for tag, entries := range catalog {
		for key, msg := range entries {
			if err := message.SetString(tag, key, msg); err != nil {
				panic(err)
			}
		}
	}
}
