package entity

// LaneRecord is one skater as extracted from a lane segment.
// Times are formatted m:ss.ss (comma separators already normalized) or empty.
type LaneRecord struct {
	Bib            string `json:"bib" yaml:"bib"`
	Name           string `json:"name" yaml:"name"`
	Category       string `json:"category" yaml:"category"`
	Nation         string `json:"nation" yaml:"nation"`
	PersonalRecord string `json:"personal_record" yaml:"personal_record"`
	SeasonBest     string `json:"season_best" yaml:"season_best"`
	RaceTime       string `json:"race_time" yaml:"race_time"`
}

// Heat pairs the lane A and lane B skater of one race.
type Heat struct {
	Number int        `json:"number" yaml:"number"`
	LaneA  LaneRecord `json:"lane_a" yaml:"lane_a"`
	LaneB  LaneRecord `json:"lane_b" yaml:"lane_b"`
}

// Metadata describes the event a heat sheet belongs to.
// Event and Distance are never empty; Extras may be.
type Metadata struct {
	Event    string `json:"event" yaml:"event"`
	Distance string `json:"distance" yaml:"distance"`
	Extras   string `json:"extras" yaml:"extras"`
}
