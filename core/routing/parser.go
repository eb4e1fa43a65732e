package routing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/dsisolutions/shopsched/core/model"
)

// Parser extracts structured data from M2M routing text / operation memo
// fields: kit tables, delivery instructions and section headers.
type Parser struct{}

var (
	kitTablePattern  = regexp.MustCompile(`^\s*(\d+)\s*/\s*([A-Za-z0-9\-]+)\s*/\s*(.+)$`)
	deliveryPattern  = regexp.MustCompile(`(?i)^\s*\((\d+)\s*PER\)\s+([A-Za-z0-9\-]+)\s+\.{3,}\s*DELIVER\s+TO\s+([A-Za-z0-9\s\-]+)$`)
	simplePerPattern = regexp.MustCompile(`^\s*\((\d+)\s*PER\)\s+([A-Za-z0-9\-]+)\s*(.*)$`)
	sectionPattern   = regexp.MustCompile(`^([A-Z][A-Z0-9\s\-]+):\s*$`)
	materialPattern  = regexp.MustCompile(`(?i)^MATERIAL\s*[:\-]?\s*(.*)$`)
	deliverToPattern = regexp.MustCompile(`(?i)DELIVER\s+TO\s+([A-Za-z0-9\s\-]+)`)
)

// Parse extracts structured data from routing text.
func (p Parser) Parse(text string) model.RoutingTextData {
	data := model.RoutingTextData{RawText: text}
	if text == "" {
		return data
	}
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		p.parseLine(strings.TrimSpace(line), &data)
	}
	return data
}

func (p Parser) parseLine(line string, data *model.RoutingTextData) {
	if line == "" {
		return
	}

	if m := kitTablePattern.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		data.KitItems = append(data.KitItems, model.KitItem{
			Quantity:    qty,
			PartNumber:  strings.TrimSpace(m[2]),
			Description: strings.TrimSpace(m[3]),
			PerJob:      true,
		})
		return
	}

	if m := deliveryPattern.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		data.DeliveryInstructions = append(data.DeliveryInstructions, model.DeliveryInstruction{
			Quantity:         qty,
			PartNumber:       strings.TrimSpace(m[2]),
			TargetWorkCenter: strings.TrimSpace(m[3]),
			PerJob:           true,
		})
		return
	}

	if m := simplePerPattern.FindStringSubmatch(line); m != nil {
		qty, _ := strconv.Atoi(m[1])
		part := strings.TrimSpace(m[2])
		remainder := strings.TrimSpace(m[3])

		if dm := deliverToPattern.FindStringSubmatch(remainder); dm != nil {
			data.DeliveryInstructions = append(data.DeliveryInstructions, model.DeliveryInstruction{
				Quantity:         qty,
				PartNumber:       part,
				TargetWorkCenter: strings.TrimSpace(dm[1]),
				PerJob:           true,
			})
			return
		}
		desc := remainder
		if desc == "" {
			desc = "See routing"
		}
		data.KitItems = append(data.KitItems, model.KitItem{
			Quantity:    qty,
			PartNumber:  part,
			Description: desc,
			PerJob:      true,
		})
		return
	}

	if m := sectionPattern.FindStringSubmatch(line); m != nil {
		data.MaterialSections = append(data.MaterialSections, strings.TrimSpace(m[1]))
		return
	}

	if m := materialPattern.FindStringSubmatch(line); m != nil {
		content := strings.TrimSpace(m[1])
		if content != "" {
			data.MaterialSections = append(data.MaterialSections, "MATERIAL: "+content)
		} else {
			data.MaterialSections = append(data.MaterialSections, "MATERIAL")
		}
	}
}

// KitRequirement is one material line with quantities resolved for a job.
type KitRequirement struct {
	PartNumber  string `json:"part_number"`
	Description string `json:"description"`
	PerJobQty   int    `json:"per_job_qty"`
	TotalQty    int    `json:"total_qty"`
	DeliveryTo  string `json:"delivery_to,omitempty"`
}

// ParseKitRequirements parses routing text and resolves total quantities
// for a job of the given size.
func (p Parser) ParseKitRequirements(text string, jobQuantity int) []KitRequirement {
	data := p.Parse(text)
	var reqs []KitRequirement

	for _, item := range data.KitItems {
		reqs = append(reqs, KitRequirement{
			PartNumber:  item.PartNumber,
			Description: item.Description,
			PerJobQty:   item.Quantity,
			TotalQty:    item.TotalQuantity(jobQuantity),
		})
	}
	for _, inst := range data.DeliveryInstructions {
		reqs = append(reqs, KitRequirement{
			PartNumber:  inst.PartNumber,
			Description: "Deliver to " + inst.TargetWorkCenter,
			PerJobQty:   inst.Quantity,
			TotalQty:    inst.TotalQuantity(jobQuantity),
			DeliveryTo:  inst.TargetWorkCenter,
		})
	}
	return reqs
}

// ExtractSectionContent returns the lines under the named section header,
// up to the next section. Returns false when the section is absent or
// empty.
func (p Parser) ExtractSectionContent(text, section string) (string, bool) {
	headerPattern, err := regexp.Compile(`(?i)^` + regexp.QuoteMeta(strings.ToUpper(section)) + `\s*[:\-]?\s*$`)
	if err != nil {
		return "", false
	}

	inSection := false
	var content []string
	for _, line := range strings.Split(strings.TrimSpace(text), "\n") {
		if headerPattern.MatchString(line) {
			inSection = true
			continue
		}
		if inSection {
			if sectionPattern.MatchString(strings.TrimSpace(line)) {
				break
			}
			content = append(content, line)
		}
	}
	joined := strings.TrimSpace(strings.Join(content, "\n"))
	return joined, joined != ""
}

// HasDeliveryTo reports whether the text contains a delivery instruction
// targeting the given work center.
func (p Parser) HasDeliveryTo(text, workCenter string) bool {
	lower := strings.ToLower(workCenter)
	for _, inst := range p.Parse(text).DeliveryInstructions {
		if strings.Contains(strings.ToLower(inst.TargetWorkCenter), lower) {
			return true
		}
	}
	return false
}

// DeliveryTargets returns all work centers mentioned in delivery
// instructions, in order of appearance.
func (p Parser) DeliveryTargets(text string) []string {
	var targets []string
	for _, inst := range p.Parse(text).DeliveryInstructions {
		targets = append(targets, inst.TargetWorkCenter)
	}
	return targets
}

// Summarize produces a short display summary of routing text.
func (p Parser) Summarize(text string, maxLines int) string {
	if text == "" {
		return "(No routing text)"
	}

	data := p.Parse(text)
	var parts []string

	if len(data.KitItems) > 0 {
		parts = append(parts, fmt.Sprintf("%d kit items", len(data.KitItems)))
	}
	if len(data.DeliveryInstructions) > 0 {
		seen := make(map[string]struct{})
		var targets []string
		for _, inst := range data.DeliveryInstructions {
			if _, ok := seen[inst.TargetWorkCenter]; !ok {
				seen[inst.TargetWorkCenter] = struct{}{}
				targets = append(targets, inst.TargetWorkCenter)
			}
		}
		parts = append(parts, "Deliveries: "+strings.Join(targets, ", "))
	}
	if len(data.MaterialSections) > 0 {
		sections := data.MaterialSections
		if len(sections) > 3 {
			sections = sections[:3]
		}
		parts = append(parts, "Sections: "+strings.Join(sections, ", "))
	}

	if len(parts) > 0 {
		return strings.Join(parts, "; ")
	}

	var lines []string
	for _, l := range strings.Split(strings.TrimSpace(text), "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
		if len(lines) == maxLines {
			break
		}
	}
	if len(lines) == 0 {
		return "(No content)"
	}
	return strings.Join(lines, "\n")
}
