package domain

// SenseRelType is the kind of a directed sense-to-sense relation.
type SenseRelType string

const (
	SenseRelAntonym         SenseRelType = "antonym"
	SenseRelAlso            SenseRelType = "also"
	SenseRelParticiple      SenseRelType = "participle"
	SenseRelPertainym       SenseRelType = "pertainym"
	SenseRelDerivation      SenseRelType = "derivation"
	SenseRelDomainTopic     SenseRelType = "domain_topic"
	SenseRelHasDomainTopic  SenseRelType = "has_domain_topic"
	SenseRelDomainRegion    SenseRelType = "domain_region"
	SenseRelHasDomainRegion SenseRelType = "has_domain_region"
	SenseRelExemplifies     SenseRelType = "exemplifies"
	SenseRelIsExemplifiedBy SenseRelType = "is_exemplified_by"
	SenseRelSimilar         SenseRelType = "similar"
	SenseRelOther           SenseRelType = "other"
)

func (t SenseRelType) String() string { return string(t) }

func (t SenseRelType) IsValid() bool {
	switch t {
	case SenseRelAntonym, SenseRelAlso, SenseRelParticiple, SenseRelPertainym,
		SenseRelDerivation, SenseRelDomainTopic, SenseRelHasDomainTopic,
		SenseRelDomainRegion, SenseRelHasDomainRegion, SenseRelExemplifies,
		SenseRelIsExemplifiedBy, SenseRelSimilar, SenseRelOther:
		return true
	}
	return false
}

// inverseSenseRels is an involution: inverse(inverse(k)) == k for every key.
var inverseSenseRels = map[SenseRelType]SenseRelType{
	SenseRelDomainRegion:    SenseRelHasDomainRegion,
	SenseRelHasDomainRegion: SenseRelDomainRegion,
	SenseRelDomainTopic:     SenseRelHasDomainTopic,
	SenseRelHasDomainTopic:  SenseRelDomainTopic,
	SenseRelExemplifies:     SenseRelIsExemplifiedBy,
	SenseRelIsExemplifiedBy: SenseRelExemplifies,
	SenseRelAntonym:         SenseRelAntonym,
	SenseRelSimilar:         SenseRelSimilar,
	SenseRelAlso:            SenseRelAlso,
	SenseRelDerivation:      SenseRelDerivation,
}

// Inverse returns the declared inverse kind. ok is false for asymmetric kinds.
func (t SenseRelType) Inverse() (inv SenseRelType, ok bool) {
	inv, ok = inverseSenseRels[t]
	return inv, ok
}

// SelfInverse reports whether the kind is its own inverse (e.g. antonym).
func (t SenseRelType) SelfInverse() bool {
	inv, ok := t.Inverse()
	return ok && inv == t
}

// SynsetRelType is the kind of a directed synset-to-synset relation.
type SynsetRelType string

const (
	SynsetRelAgent                   SynsetRelType = "agent"
	SynsetRelAlso                    SynsetRelType = "also"
	SynsetRelAntonym                 SynsetRelType = "antonym"
	SynsetRelAttribute               SynsetRelType = "attribute"
	SynsetRelBeInState               SynsetRelType = "be_in_state"
	SynsetRelCauses                  SynsetRelType = "causes"
	SynsetRelClassifiedBy            SynsetRelType = "classified_by"
	SynsetRelClassifies              SynsetRelType = "classifies"
	SynsetRelCoAgentInstrument       SynsetRelType = "co_agent_instrument"
	SynsetRelCoAgentPatient          SynsetRelType = "co_agent_patient"
	SynsetRelCoAgentResult           SynsetRelType = "co_agent_result"
	SynsetRelCoInstrumentAgent       SynsetRelType = "co_instrument_agent"
	SynsetRelCoInstrumentPatient     SynsetRelType = "co_instrument_patient"
	SynsetRelCoInstrumentResult      SynsetRelType = "co_instrument_result"
	SynsetRelCoPatientAgent          SynsetRelType = "co_patient_agent"
	SynsetRelCoPatientInstrument     SynsetRelType = "co_patient_instrument"
	SynsetRelCoResultAgent           SynsetRelType = "co_result_agent"
	SynsetRelCoResultInstrument      SynsetRelType = "co_result_instrument"
	SynsetRelCoRole                  SynsetRelType = "co_role"
	SynsetRelDirection               SynsetRelType = "direction"
	SynsetRelDomainRegion            SynsetRelType = "domain_region"
	SynsetRelDomainTopic             SynsetRelType = "domain_topic"
	SynsetRelEntails                 SynsetRelType = "entails"
	SynsetRelEqSynonym               SynsetRelType = "eq_synonym"
	SynsetRelExemplifies             SynsetRelType = "exemplifies"
	SynsetRelHasDomainRegion         SynsetRelType = "has_domain_region"
	SynsetRelHasDomainTopic          SynsetRelType = "has_domain_topic"
	SynsetRelHoloLocation            SynsetRelType = "holo_location"
	SynsetRelHoloMember              SynsetRelType = "holo_member"
	SynsetRelHoloPart                SynsetRelType = "holo_part"
	SynsetRelHoloPortion             SynsetRelType = "holo_portion"
	SynsetRelHoloSubstance           SynsetRelType = "holo_substance"
	SynsetRelHolonym                 SynsetRelType = "holonym"
	SynsetRelHypernym                SynsetRelType = "hypernym"
	SynsetRelHyponym                 SynsetRelType = "hyponym"
	SynsetRelInManner                SynsetRelType = "in_manner"
	SynsetRelInstanceHypernym        SynsetRelType = "instance_hypernym"
	SynsetRelInstanceHyponym         SynsetRelType = "instance_hyponym"
	SynsetRelInstrument              SynsetRelType = "instrument"
	SynsetRelInvolved                SynsetRelType = "involved"
	SynsetRelInvolvedAgent           SynsetRelType = "involved_agent"
	SynsetRelInvolvedDirection       SynsetRelType = "involved_direction"
	SynsetRelInvolvedInstrument      SynsetRelType = "involved_instrument"
	SynsetRelInvolvedLocation        SynsetRelType = "involved_location"
	SynsetRelInvolvedPatient         SynsetRelType = "involved_patient"
	SynsetRelInvolvedResult          SynsetRelType = "involved_result"
	SynsetRelInvolvedSourceDirection SynsetRelType = "involved_source_direction"
	SynsetRelInvolvedTargetDirection SynsetRelType = "involved_target_direction"
	SynsetRelIsCausedBy              SynsetRelType = "is_caused_by"
	SynsetRelIsEntailedBy            SynsetRelType = "is_entailed_by"
	SynsetRelIsExemplifiedBy         SynsetRelType = "is_exemplified_by"
	SynsetRelIsSubeventOf            SynsetRelType = "is_subevent_of"
	SynsetRelLocation                SynsetRelType = "location"
	SynsetRelMannerOf                SynsetRelType = "manner_of"
	SynsetRelMeroLocation            SynsetRelType = "mero_location"
	SynsetRelMeroMember              SynsetRelType = "mero_member"
	SynsetRelMeroPart                SynsetRelType = "mero_part"
	SynsetRelMeroPortion             SynsetRelType = "mero_portion"
	SynsetRelMeroSubstance           SynsetRelType = "mero_substance"
	SynsetRelMeronym                 SynsetRelType = "meronym"
	SynsetRelOther                   SynsetRelType = "other"
	SynsetRelPatient                 SynsetRelType = "patient"
	SynsetRelRestrictedBy            SynsetRelType = "restricted_by"
	SynsetRelRestricts               SynsetRelType = "restricts"
	SynsetRelResult                  SynsetRelType = "result"
	SynsetRelRole                    SynsetRelType = "role"
	SynsetRelSimilar                 SynsetRelType = "similar"
	SynsetRelSourceDirection         SynsetRelType = "source_direction"
	SynsetRelStateOf                 SynsetRelType = "state_of"
	SynsetRelSubevent                SynsetRelType = "subevent"
	SynsetRelTargetDirection         SynsetRelType = "target_direction"
)

var synsetRelTypes = map[SynsetRelType]struct{}{
	SynsetRelAgent: {}, SynsetRelAlso: {}, SynsetRelAntonym: {}, SynsetRelAttribute: {},
	SynsetRelBeInState: {}, SynsetRelCauses: {}, SynsetRelClassifiedBy: {}, SynsetRelClassifies: {},
	SynsetRelCoAgentInstrument: {}, SynsetRelCoAgentPatient: {}, SynsetRelCoAgentResult: {},
	SynsetRelCoInstrumentAgent: {}, SynsetRelCoInstrumentPatient: {}, SynsetRelCoInstrumentResult: {},
	SynsetRelCoPatientAgent: {}, SynsetRelCoPatientInstrument: {}, SynsetRelCoResultAgent: {},
	SynsetRelCoResultInstrument: {}, SynsetRelCoRole: {}, SynsetRelDirection: {},
	SynsetRelDomainRegion: {}, SynsetRelDomainTopic: {}, SynsetRelEntails: {}, SynsetRelEqSynonym: {},
	SynsetRelExemplifies: {}, SynsetRelHasDomainRegion: {}, SynsetRelHasDomainTopic: {},
	SynsetRelHoloLocation: {}, SynsetRelHoloMember: {}, SynsetRelHoloPart: {}, SynsetRelHoloPortion: {},
	SynsetRelHoloSubstance: {}, SynsetRelHolonym: {}, SynsetRelHypernym: {}, SynsetRelHyponym: {},
	SynsetRelInManner: {}, SynsetRelInstanceHypernym: {}, SynsetRelInstanceHyponym: {},
	SynsetRelInstrument: {}, SynsetRelInvolved: {}, SynsetRelInvolvedAgent: {},
	SynsetRelInvolvedDirection: {}, SynsetRelInvolvedInstrument: {}, SynsetRelInvolvedLocation: {},
	SynsetRelInvolvedPatient: {}, SynsetRelInvolvedResult: {}, SynsetRelInvolvedSourceDirection: {},
	SynsetRelInvolvedTargetDirection: {}, SynsetRelIsCausedBy: {}, SynsetRelIsEntailedBy: {},
	SynsetRelIsExemplifiedBy: {}, SynsetRelIsSubeventOf: {}, SynsetRelLocation: {},
	SynsetRelMannerOf: {}, SynsetRelMeroLocation: {}, SynsetRelMeroMember: {}, SynsetRelMeroPart: {},
	SynsetRelMeroPortion: {}, SynsetRelMeroSubstance: {}, SynsetRelMeronym: {}, SynsetRelOther: {},
	SynsetRelPatient: {}, SynsetRelRestrictedBy: {}, SynsetRelRestricts: {}, SynsetRelResult: {},
	SynsetRelRole: {}, SynsetRelSimilar: {}, SynsetRelSourceDirection: {}, SynsetRelStateOf: {},
	SynsetRelSubevent: {}, SynsetRelTargetDirection: {},
}

func (t SynsetRelType) String() string { return string(t) }

func (t SynsetRelType) IsValid() bool {
	_, ok := synsetRelTypes[t]
	return ok
}

// inverseSynsetRels is an involution: inverse(inverse(k)) == k for every key.
var inverseSynsetRels = map[SynsetRelType]SynsetRelType{
	SynsetRelHypernym:                SynsetRelHyponym,
	SynsetRelHyponym:                 SynsetRelHypernym,
	SynsetRelInstanceHypernym:        SynsetRelInstanceHyponym,
	SynsetRelInstanceHyponym:         SynsetRelInstanceHypernym,
	SynsetRelMeronym:                 SynsetRelHolonym,
	SynsetRelHolonym:                 SynsetRelMeronym,
	SynsetRelMeroLocation:            SynsetRelHoloLocation,
	SynsetRelHoloLocation:            SynsetRelMeroLocation,
	SynsetRelMeroMember:              SynsetRelHoloMember,
	SynsetRelHoloMember:              SynsetRelMeroMember,
	SynsetRelMeroPart:                SynsetRelHoloPart,
	SynsetRelHoloPart:                SynsetRelMeroPart,
	SynsetRelMeroPortion:             SynsetRelHoloPortion,
	SynsetRelHoloPortion:             SynsetRelMeroPortion,
	SynsetRelMeroSubstance:           SynsetRelHoloSubstance,
	SynsetRelHoloSubstance:           SynsetRelMeroSubstance,
	SynsetRelBeInState:               SynsetRelStateOf,
	SynsetRelStateOf:                 SynsetRelBeInState,
	SynsetRelCauses:                  SynsetRelIsCausedBy,
	SynsetRelIsCausedBy:              SynsetRelCauses,
	SynsetRelSubevent:                SynsetRelIsSubeventOf,
	SynsetRelIsSubeventOf:            SynsetRelSubevent,
	SynsetRelMannerOf:                SynsetRelInManner,
	SynsetRelInManner:                SynsetRelMannerOf,
	SynsetRelRestricts:               SynsetRelRestrictedBy,
	SynsetRelRestrictedBy:            SynsetRelRestricts,
	SynsetRelClassifies:              SynsetRelClassifiedBy,
	SynsetRelClassifiedBy:            SynsetRelClassifies,
	SynsetRelEntails:                 SynsetRelIsEntailedBy,
	SynsetRelIsEntailedBy:            SynsetRelEntails,
	SynsetRelDomainRegion:            SynsetRelHasDomainRegion,
	SynsetRelHasDomainRegion:         SynsetRelDomainRegion,
	SynsetRelDomainTopic:             SynsetRelHasDomainTopic,
	SynsetRelHasDomainTopic:          SynsetRelDomainTopic,
	SynsetRelExemplifies:             SynsetRelIsExemplifiedBy,
	SynsetRelIsExemplifiedBy:         SynsetRelExemplifies,
	SynsetRelRole:                    SynsetRelInvolved,
	SynsetRelInvolved:                SynsetRelRole,
	SynsetRelAgent:                   SynsetRelInvolvedAgent,
	SynsetRelInvolvedAgent:           SynsetRelAgent,
	SynsetRelPatient:                 SynsetRelInvolvedPatient,
	SynsetRelInvolvedPatient:         SynsetRelPatient,
	SynsetRelResult:                  SynsetRelInvolvedResult,
	SynsetRelInvolvedResult:          SynsetRelResult,
	SynsetRelInstrument:              SynsetRelInvolvedInstrument,
	SynsetRelInvolvedInstrument:      SynsetRelInstrument,
	SynsetRelLocation:                SynsetRelInvolvedLocation,
	SynsetRelInvolvedLocation:        SynsetRelLocation,
	SynsetRelDirection:               SynsetRelInvolvedDirection,
	SynsetRelInvolvedDirection:       SynsetRelDirection,
	SynsetRelTargetDirection:         SynsetRelInvolvedTargetDirection,
	SynsetRelInvolvedTargetDirection: SynsetRelTargetDirection,
	SynsetRelSourceDirection:         SynsetRelInvolvedSourceDirection,
	SynsetRelInvolvedSourceDirection: SynsetRelSourceDirection,
	SynsetRelCoAgentPatient:          SynsetRelCoPatientAgent,
	SynsetRelCoPatientAgent:          SynsetRelCoAgentPatient,
	SynsetRelCoAgentInstrument:       SynsetRelCoInstrumentAgent,
	SynsetRelCoInstrumentAgent:       SynsetRelCoAgentInstrument,
	SynsetRelCoAgentResult:           SynsetRelCoResultAgent,
	SynsetRelCoResultAgent:           SynsetRelCoAgentResult,
	SynsetRelCoPatientInstrument:     SynsetRelCoInstrumentPatient,
	SynsetRelCoInstrumentPatient:     SynsetRelCoPatientInstrument,
	SynsetRelCoInstrumentResult:      SynsetRelCoResultInstrument,
	SynsetRelCoResultInstrument:      SynsetRelCoInstrumentResult,
	SynsetRelAntonym:                 SynsetRelAntonym,
	SynsetRelEqSynonym:               SynsetRelEqSynonym,
	SynsetRelSimilar:                 SynsetRelSimilar,
	SynsetRelAlso:                    SynsetRelAlso,
	SynsetRelAttribute:               SynsetRelAttribute,
	SynsetRelCoRole:                  SynsetRelCoRole,
}

// Inverse returns the declared inverse kind. ok is false for asymmetric kinds.
func (t SynsetRelType) Inverse() (inv SynsetRelType, ok bool) {
	inv, ok = inverseSynsetRels[t]
	return inv, ok
}

// SelfInverse reports whether the kind is its own inverse (e.g. similar).
func (t SynsetRelType) SelfInverse() bool {
	inv, ok := t.Inverse()
	return ok && inv == t
}

// SenseRelation is a typed edge from the owning sense to Target.
type SenseRelation struct {
	Target string
	Kind   SenseRelType
}

// SynsetRelation is a typed edge from the owning synset to Target.
type SynsetRelation struct {
	Target string
	Kind   SynsetRelType
}
