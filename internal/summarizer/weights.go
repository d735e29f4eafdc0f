package summarizer

// Weights holds the magnitudes of the additive scoring signals. Only their
// relative order matters: scores rank sentences within one document and are
// never compared across documents.
type Weights struct {
	IdealLength   float64 `yaml:"ideal_length"`
	LengthMax     float64 `yaml:"length_max"`
	LengthPenalty float64 `yaml:"length_penalty"`

	PositionFirst  float64 `yaml:"position_first"`
	PositionLast   float64 `yaml:"position_last"`
	PositionSecond float64 `yaml:"position_second"`
	PositionEarly  float64 `yaml:"position_early"`

	Keyword         float64 `yaml:"keyword"`
	KeywordCompound float64 `yaml:"keyword_compound"`
	Question        float64 `yaml:"question"`
	Connector       float64 `yaml:"connector"`
	Numeric         float64 `yaml:"numeric"`
	Symbol          float64 `yaml:"symbol"`

	Salience         float64 `yaml:"salience"`
	SalienceCap      float64 `yaml:"salience_cap"`
	SalienceMinFreq  int     `yaml:"salience_min_freq"`
	SalienceMaxFreq  int     `yaml:"salience_max_freq"`
	SalienceMinRunes int     `yaml:"salience_min_runes"`

	Quote      float64 `yaml:"quote"`
	ProperNoun float64 `yaml:"proper_noun"`
}

// DefaultWeights returns the documented default signal magnitudes.
func DefaultWeights() Weights {
	return Weights{
		IdealLength:   15,
		LengthMax:     3.0,
		LengthPenalty: 0.2,

		PositionFirst:  3.0,
		PositionLast:   2.0,
		PositionSecond: 1.5,
		PositionEarly:  1.0,

		Keyword:         2.0,
		KeywordCompound: 1.5,
		Question:        0.5,
		Connector:       0.5,
		Numeric:         1.0,
		Symbol:          1.0,

		Salience:         0.3,
		SalienceCap:      2.0,
		SalienceMinFreq:  3,
		SalienceMaxFreq:  8,
		SalienceMinRunes: 4,

		Quote:      0.5,
		ProperNoun: 0.5,
	}
}
