package routing

import (
	"testing"
)

func TestParseKitTable(t *testing.T) {
	var p Parser
	text := "2 / BRK-100 / MOUNTING BRACKET\n4 / SCR-8 / #8 SCREW"

	data := p.Parse(text)
	if len(data.KitItems) != 2 {
		t.Fatalf("expected 2 kit items got %d", len(data.KitItems))
	}
	first := data.KitItems[0]
	if first.Quantity != 2 || first.PartNumber != "BRK-100" || first.Description != "MOUNTING BRACKET" {
		t.Fatalf("unexpected kit item %+v", first)
	}
	if !first.PerJob {
		t.Fatalf("kit table lines are per-job quantities")
	}
}

func TestParseDeliveryInstruction(t *testing.T) {
	var p Parser
	text := "(2 PER) PNL-44 ... DELIVER TO PANEL BUILD"

	data := p.Parse(text)
	if len(data.DeliveryInstructions) != 1 {
		t.Fatalf("expected 1 delivery got %+v", data)
	}
	d := data.DeliveryInstructions[0]
	if d.Quantity != 2 || d.PartNumber != "PNL-44" || d.TargetWorkCenter != "PANEL BUILD" {
		t.Fatalf("unexpected delivery %+v", d)
	}
}

func TestParseSimplePerLine(t *testing.T) {
	var p Parser

	data := p.Parse("(3 PER) WDG-7 steel wedge")
	if len(data.KitItems) != 1 {
		t.Fatalf("expected 1 kit item got %+v", data)
	}
	if data.KitItems[0].Description != "steel wedge" {
		t.Fatalf("unexpected description %q", data.KitItems[0].Description)
	}

	data = p.Parse("(3 PER) WDG-7")
	if data.KitItems[0].Description != "See routing" {
		t.Fatalf("empty remainder expected placeholder, got %q", data.KitItems[0].Description)
	}

	data = p.Parse("(1 PER) KIT-5 deliver to WELD")
	if len(data.DeliveryInstructions) != 1 || data.DeliveryInstructions[0].TargetWorkCenter != "WELD" {
		t.Fatalf("expected delivery to WELD got %+v", data)
	}
}

func TestParseSectionsAndMaterial(t *testing.T) {
	var p Parser
	text := "KIT LIST:\n2 / BRK-100 / BRACKET\nMATERIAL: 304 stainless\nMATERIAL"

	data := p.Parse(text)
	want := []string{"KIT LIST", "MATERIAL: 304 stainless", "MATERIAL"}
	if len(data.MaterialSections) != len(want) {
		t.Fatalf("expected %v got %v", want, data.MaterialSections)
	}
	for i := range want {
		if data.MaterialSections[i] != want[i] {
			t.Fatalf("expected %v got %v", want, data.MaterialSections)
		}
	}
}

func TestParseEmptyText(t *testing.T) {
	var p Parser
	data := p.Parse("")
	if data.RawText != "" || len(data.KitItems) != 0 || len(data.MaterialSections) != 0 {
		t.Fatalf("empty text must parse to empty data: %+v", data)
	}
}

func TestParseKitRequirements(t *testing.T) {
	var p Parser
	text := "2 / BRK-100 / BRACKET\n(1 PER) PNL-44 ... DELIVER TO PANEL"

	reqs := p.ParseKitRequirements(text, 10)
	if len(reqs) != 2 {
		t.Fatalf("expected 2 requirements got %+v", reqs)
	}
	if reqs[0].TotalQty != 20 || reqs[0].PerJobQty != 2 {
		t.Fatalf("unexpected quantities %+v", reqs[0])
	}
	if reqs[1].DeliveryTo != "PANEL" || reqs[1].TotalQty != 10 {
		t.Fatalf("unexpected delivery requirement %+v", reqs[1])
	}
}

func TestExtractSectionContent(t *testing.T) {
	var p Parser
	text := "KIT LIST:\n2 / A / a part\n3 / B / b part\nNOTES:\nhandle with care"

	content, ok := p.ExtractSectionContent(text, "kit list")
	if !ok {
		t.Fatalf("expected section found")
	}
	if content != "2 / A / a part\n3 / B / b part" {
		t.Fatalf("unexpected content %q", content)
	}

	if _, ok := p.ExtractSectionContent(text, "MISSING"); ok {
		t.Fatalf("absent section must report not found")
	}
}

func TestDeliveryTargets(t *testing.T) {
	var p Parser
	text := "(1 PER) A-1 ... DELIVER TO WELD\n(2 PER) B-2 ... DELIVER TO PAINT"

	targets := p.DeliveryTargets(text)
	if len(targets) != 2 || targets[0] != "WELD" || targets[1] != "PAINT" {
		t.Fatalf("unexpected targets %v", targets)
	}
	if !p.HasDeliveryTo(text, "weld") {
		t.Fatalf("HasDeliveryTo should match case-insensitively")
	}
	if p.HasDeliveryTo(text, "MILL") {
		t.Fatalf("no delivery to MILL expected")
	}
}

func TestSummarize(t *testing.T) {
	var p Parser
	if got := p.Summarize("", 3); got != "(No routing text)" {
		t.Fatalf("unexpected summary %q", got)
	}

	text := "2 / BRK-100 / BRACKET\n(1 PER) PNL-44 ... DELIVER TO PANEL"
	got := p.Summarize(text, 3)
	if got == "" || got == "(No content)" {
		t.Fatalf("unexpected summary %q", got)
	}
}
