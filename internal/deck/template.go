package deck

import "fmt"

// Step is one entry in the liturgy template. Exactly one of the
// type-specific fields applies depending on Type.
type Step struct {
	Type  string `yaml:"type" json:"type"`
	Title string `yaml:"title,omitempty" json:"title,omitempty"` // section heading
	Text  string `yaml:"text,omitempty" json:"text,omitempty"`   // fixed message text
	Hymn  string `yaml:"hymn,omitempty" json:"hymn,omitempty"`   // fixed hymn specifier
	Slot  string `yaml:"slot,omitempty" json:"slot,omitempty"`   // plan-filled hymn slot
}

// Step types.
const (
	StepPrelude   = "prelude"
	StepMessage   = "message"
	StepSection   = "section"
	StepHymn      = "hymn"
	StepScripture = "scripture"
	StepMemorize  = "memorize"
	StepTeaching  = "teaching"
	StepCommunion = "communion"
	StepBlank     = "blank"
)

// Hymn slots a plan can fill.
const (
	SlotCongregation = "congregation"
	SlotChoir        = "choir"
	SlotResponse     = "response"
	SlotOffering     = "offering"
)

// Template is the order of service.
type Template []Step

// Validate rejects steps with unknown types or hymn steps naming
// neither a fixed hymn nor a slot.
func (t Template) Validate() error {
	for i, step := range t {
		switch step.Type {
		case StepPrelude, StepMessage:
			if step.Text == "" {
				return fmt.Errorf("step %d: %s step needs text", i, step.Type)
			}
		case StepSection:
			if step.Title == "" {
				return fmt.Errorf("step %d: section step needs a title", i)
			}
		case StepHymn:
			if step.Hymn == "" && step.Slot == "" {
				return fmt.Errorf("step %d: hymn step needs a hymn or a slot", i)
			}
			if step.Slot != "" {
				switch step.Slot {
				case SlotCongregation, SlotChoir, SlotResponse, SlotOffering:
				default:
					return fmt.Errorf("step %d: unknown hymn slot %q", i, step.Slot)
				}
			}
		case StepScripture, StepMemorize, StepTeaching, StepCommunion, StepBlank:
		default:
			return fmt.Errorf("step %d: unknown step type %q", i, step.Type)
		}
	}
	return nil
}

// HymnRequirement is one hymn the template and plan together call
// for. Optional marks the slots whose absence degrades the deck
// instead of failing it (choir, response, offering).
type HymnRequirement struct {
	Spec     string
	Optional bool
}

// HymnRequirements returns every hymn required to assemble this plan,
// keyed the way Build looks them up: fixed hymns and congregation
// hymns by their specifier.
func (t Template) HymnRequirements(plan Plan) []HymnRequirement {
	var reqs []HymnRequirement
	seen := map[string]bool{}
	add := func(spec string, optional bool) {
		if spec != "" && !seen[spec] {
			seen[spec] = true
			reqs = append(reqs, HymnRequirement{Spec: spec, Optional: optional})
		}
	}
	for _, step := range t {
		if step.Type != StepHymn {
			continue
		}
		if step.Hymn != "" {
			add(step.Hymn, false)
			continue
		}
		switch step.Slot {
		case SlotCongregation:
			for _, s := range plan.Hymns {
				add(s, false)
			}
		case SlotChoir:
			add(plan.Choir, true)
		case SlotResponse:
			add(plan.Response, true)
		case SlotOffering:
			add(plan.Offering, true)
		}
	}
	return reqs
}

// ClearSlot blanks the plan slot that referenced an optional hymn, so
// Build skips it.
func (p *Plan) ClearSlot(spec string) {
	if p.Choir == spec {
		p.Choir = ""
	}
	if p.Response == spec {
		p.Response = ""
	}
	if p.Offering == spec {
		p.Offering = ""
	}
}

// DefaultTemplate is the customary order of service: silence notice,
// call to worship, praise, prayer, reading, anthem, message, response,
// offering, announcements, doxology and benediction.
func DefaultTemplate() Template {
	return Template{
		{Type: StepPrelude, Text: "請儘量往前或往中間坐,並將手機關閉或關至靜音,預備心敬拜！"},
		{Type: StepMessage, Text: "惟耶和華在他的聖殿中；全地的人，都當在他面前肅敬靜默。\n\n哈巴谷書 2:20"},
		{Type: StepHymn, Hymn: "聖哉聖哉聖哉"},
		{Type: StepSection, Title: "宣  召"},
		{Type: StepSection, Title: "頌  讚"},
		{Type: StepHymn, Slot: SlotCongregation},
		{Type: StepSection, Title: "祈  禱"},
		{Type: StepSection, Title: "讀  經"},
		{Type: StepScripture},
		{Type: StepMemorize},
		{Type: StepBlank},
		{Type: StepSection, Title: "獻  詩"},
		{Type: StepHymn, Slot: SlotChoir},
		{Type: StepTeaching},
		{Type: StepSection, Title: "回  應"},
		{Type: StepHymn, Slot: SlotResponse},
		{Type: StepHymn, Slot: SlotOffering},
		{Type: StepSection, Title: "奉 獻 禱 告"},
		{Type: StepCommunion, Title: "聖  餐"},
		{Type: StepSection, Title: "歡 迎 您"},
		{Type: StepSection, Title: "家 事 分 享"},
		{Type: StepHymn, Hymn: "三一頌"},
		{Type: StepSection, Title: "祝  福"},
		{Type: StepSection, Title: "默  禱"},
		{Type: StepBlank},
	}
}
