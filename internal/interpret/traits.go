package interpret

import (
	"github.com/jengzang/astro-backend-go/internal/astro"
	"github.com/jengzang/astro-backend-go/internal/ephemeris"
)

// signTraits is indexed by astro.Sign.
type signTraits [astro.SignCount]string

func (t signTraits) of(s astro.Sign) string {
	if !s.Valid() {
		return ""
	}
	return t[s]
}

var ascendantTraits = signTraits{
	"bold, energetic, and direct in your approach",
	"calm, steady, and grounded",
	"curious, communicative, and adaptable",
	"nurturing, sensitive, and protective",
	"confident, warm, and charismatic",
	"analytical, helpful, and detail-oriented",
	"diplomatic, charming, and relationship-focused",
	"intense, mysterious, and transformative",
	"optimistic, adventurous, and philosophical",
	"ambitious, responsible, and disciplined",
	"independent, innovative, and humanitarian",
	"compassionate, intuitive, and creative",
}

var sunTraits = signTraits{
	"action, independence, and being first",
	"stability, comfort, and lasting value",
	"learning, variety, and connection",
	"emotional security and nurturing others",
	"creative self-expression and recognition",
	"improvement, service, and perfection",
	"harmony, beauty, and partnership",
	"intensity, depth, and transformation",
	"meaning, adventure, and wisdom",
	"achievement, structure, and legacy",
	"innovation, independence, and ideals",
	"compassion, spirituality, and unity",
}

var moonTraits = signTraits{
	"need quick emotional processing and action",
	"need stability and physical comfort",
	"need variety and intellectual stimulation",
	"need deep emotional connection and security",
	"need appreciation and creative expression",
	"need order and to be useful",
	"need harmony and partnership",
	"need emotional intensity and depth",
	"need freedom and optimism",
	"need structure and achievement",
	"need independence and uniqueness",
	"need to merge with something greater",
}

var venusTraits = signTraits{
	"passion, excitement, and directness",
	"stability, sensuality, and loyalty",
	"mental stimulation and variety",
	"emotional depth and nurturing",
	"romance, loyalty, and admiration",
	"practical acts of service and improvement",
	"harmony, romance, and partnership",
	"intensity, loyalty, and transformation",
	"adventure, honesty, and freedom",
	"commitment, stability, and respect",
	"friendship, independence, and uniqueness",
	"emotional fusion and compassion",
}

var marsTraits = signTraits{
	"direct action and bold initiative",
	"steady persistence and sensuality",
	"mental stimulation and variety",
	"emotional connection first",
	"confident pursuit and grand gestures",
	"careful planning and service",
	"charm and partnership",
	"intensity and deep connection",
	"adventure and honesty",
	"traditional courtship and commitment",
	"friendship and intellectual connection",
	"romance and emotional merging",
}

// careerFields is read from the Sun sign.
var careerFields = signTraits{
	"leadership, entrepreneurship, sports, or pioneering fields",
	"finance, real estate, agriculture, art, or luxury goods",
	"journalism, teaching, writing, sales, or media",
	"healthcare, hospitality, real estate, counseling, or education",
	"entertainment, management, politics, or entrepreneurship",
	"healthcare, research, editing, analysis, or service industries",
	"law, diplomacy, design, counseling, or the arts",
	"psychology, research, surgery, finance, or investigative work",
	"education, travel, philosophy, publishing, or international business",
	"business, administration, architecture, or established institutions",
	"technology, social reform, science, or group facilitation",
	"arts, music, healing, spirituality, or charity work",
}

var planetStrengths = map[ephemeris.Body]string{
	ephemeris.Sun:     "strong sense of self and natural leadership",
	ephemeris.Moon:    "emotional intelligence and nurturing ability",
	ephemeris.Mercury: "clear communication and mental agility",
	ephemeris.Venus:   "natural charm and artistic sense",
	ephemeris.Mars:    "drive, courage, and taking action",
	ephemeris.Jupiter: "optimism, wisdom, and good fortune",
	ephemeris.Saturn:  "discipline, responsibility, and perseverance",
}

var planetChallenges = map[ephemeris.Body]string{
	ephemeris.Sun:     "work on building confidence and self-expression",
	ephemeris.Moon:    "emotional patterns may need attention and healing",
	ephemeris.Mercury: "communication could require extra effort",
	ephemeris.Venus:   "relationships and values may need development",
	ephemeris.Mars:    "channeling energy constructively takes practice",
	ephemeris.Jupiter: "avoid over-optimism, stay grounded",
	ephemeris.Saturn:  "patience with limitations builds character",
}
