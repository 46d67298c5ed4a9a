package i18n

var english = map[string]string{
	"label.na":              "N/A",
	"label.platformUnknown": "Unknown",
	"label.multipleSystems": "multiple systems",
	"label.varied":          "Varied",
	"label.variedSystems":   "varied systems",
	"file.cached":           "Cached file",

	"status.empty": "No dataset loaded",
	"status.ready": "Dataset ready",
	"status.error": "Dataset could not be loaded",

	"trend.insufficient": "Not enough yearly data to measure a trend yet.",
	"trend.flat":         "Your average scores are stable across the years.",
	"trend.up":           "Your average scores are trending upward over time.",
	"trend.down":         "Your average scores are trending downward over time.",

	"trendNote.flat": "steady taste",
	"trendNote.up":   "warming up",
	"trendNote.down": "growing more critical",

	"tier.generous":     "Generous",
	"tier.tough":        "Tough",
	"tier.balanced":     "Balanced",
	"tier.consistent":   "Consistent",
	"tier.wide-ranging": "Wide-ranging",
	"tier.selective":    "Selective",
	"pace.marathon":     "Marathon",
	"pace.steady":       "Steady",
	"pace.curated":      "Curated",

	"profile.title":                 "{generosity} {consistency} Gamer",
	"profile.subtitle":              "{pace} library with a {trendNote}",
	"profile.lead":                  "Your average score of {average} with a standard deviation of {stdDev} suggests a {consistency} scoring style.",
	"profile.description.base":      "You lean {generosity} in your ratings, and your catalog spans {total} titles from {firstYear} to {lastYear}.",
	"profile.description.platforms": "Top platforms include {platforms}.",
	"profile.description.mode":      "Your most common score is {mode}.",
	"profile.description.decade":    "Your highest average decade is the {decade}s.",
	"profile.description.closing":   "Overall, your taste clusters around {platform}, with a {trendNote} over time.",
	"profile.highlight.bestYear":    "Your highest-rated year was {year} with an average of {average}.",
	"profile.highlight.busiestYear": "Your busiest year was {year} with {count} rated games.",
	"profile.trait.generosity":      "{generosity} rater",
	"profile.trait.consistency":     "{consistency} scorer",
	"profile.trait.platforms":       "Top platforms: {platforms}",
	"profile.trait.pace":            "{pace} player",

	"month.1":  "Jan",
	"month.2":  "Feb",
	"month.3":  "Mar",
	"month.4":  "Apr",
	"month.5":  "May",
	"month.6":  "Jun",
	"month.7":  "Jul",
	"month.8":  "Aug",
	"month.9":  "Sep",
	"month.10": "Oct",
	"month.11": "Nov",
	"month.12": "Dec",

	"weekday.0": "Sunday",
	"weekday.1": "Monday",
	"weekday.2": "Tuesday",
	"weekday.3": "Wednesday",
	"weekday.4": "Thursday",
	"weekday.5": "Friday",
	"weekday.6": "Saturday",
}

var dutch = map[string]string{
	"label.na":              "n.v.t.",
	"label.platformUnknown": "Onbekend",
	"label.multipleSystems": "meerdere systemen",
	"label.varied":          "Gevarieerd",
	"label.variedSystems":   "diverse systemen",
	"file.cached":           "Opgeslagen bestand",

	"status.empty": "Geen dataset geladen",
	"status.ready": "Dataset klaar",
	"status.error": "Dataset kon niet worden geladen",

	"trend.insufficient": "Nog niet genoeg jaargegevens om een trend te meten.",
	"trend.flat":         "Je gemiddelde scores zijn stabiel door de jaren heen.",
	"trend.up":           "Je gemiddelde scores stijgen door de tijd.",
	"trend.down":         "Je gemiddelde scores dalen door de tijd.",

	"trendNote.flat": "stabiele smaak",
	"trendNote.up":   "groeiend enthousiasme",
	"trendNote.down": "steeds kritischere blik",

	"tier.generous":     "Gulle",
	"tier.tough":        "Strenge",
	"tier.balanced":     "Gebalanceerde",
	"tier.consistent":   "Consistente",
	"tier.wide-ranging": "Veelzijdige",
	"tier.selective":    "Selectieve",
	"pace.marathon":     "Marathon",
	"pace.steady":       "Gestage",
	"pace.curated":      "Zorgvuldig gekozen",

	"profile.title":                 "{generosity} {consistency} gamer",
	"profile.subtitle":              "{pace} bibliotheek met een {trendNote}",
	"profile.lead":                  "Je gemiddelde score van {average} met een standaarddeviatie van {stdDev} wijst op een {consistency} beoordelingsstijl.",
	"profile.description.base":      "Je beoordeelt vooral {generosity}, en je catalogus omvat {total} titels van {firstYear} tot {lastYear}.",
	"profile.description.platforms": "Top platforms zijn onder meer {platforms}.",
	"profile.description.mode":      "Je meest gegeven score is {mode}.",
	"profile.description.decade":    "Je best beoordeelde decennium zijn de jaren {decade}.",
	"profile.description.closing":   "Al met al draait je smaak om {platform}, met een {trendNote} door de tijd.",
	"profile.highlight.bestYear":    "Je best beoordeelde jaar was {year} met een gemiddelde van {average}.",
	"profile.highlight.busiestYear": "Je drukste jaar was {year} met {count} beoordeelde games.",
	"profile.trait.generosity":      "{generosity} beoordelaar",
	"profile.trait.consistency":     "{consistency} scoorder",
	"profile.trait.platforms":       "Top platforms: {platforms}",
	"profile.trait.pace":            "{pace} speler",

	"month.1":  "jan",
	"month.2":  "feb",
	"month.3":  "mrt",
	"month.4":  "apr",
	"month.5":  "mei",
	"month.6":  "jun",
	"month.7":  "jul",
	"month.8":  "aug",
	"month.9":  "sep",
	"month.10": "okt",
	"month.11": "nov",
	"month.12": "dec",

	"weekday.0": "zondag",
	"weekday.1": "maandag",
	"weekday.2": "dinsdag",
	"weekday.3": "woensdag",
	"weekday.4": "donderdag",
	"weekday.5": "vrijdag",
	"weekday.6": "zaterdag",
}
