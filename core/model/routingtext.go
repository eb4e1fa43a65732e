package model

// KitItem is a kit or material line extracted from routing text.
type KitItem struct {
	Quantity    int    `json:"quantity"`
	PartNumber  string `json:"part_number"`
	Description string `json:"description"`
	PerJob      bool   `json:"per_job"`
}

// TotalQuantity returns the quantity needed for a job of the given size.
func (k KitItem) TotalQuantity(jobQuantity int) int {
	if k.PerJob {
		return k.Quantity * jobQuantity
	}
	return k.Quantity
}

// DeliveryInstruction is a "deliver to" line extracted from routing text.
type DeliveryInstruction struct {
	Quantity         int    `json:"quantity"`
	PartNumber       string `json:"part_number"`
	TargetWorkCenter string `json:"target_work_center"`
	PerJob           bool   `json:"per_job"`
}

// TotalQuantity returns the quantity needed for a job of the given size.
func (d DeliveryInstruction) TotalQuantity(jobQuantity int) int {
	if d.PerJob {
		return d.Quantity * jobQuantity
	}
	return d.Quantity
}

// RoutingTextData is the structured content of an operation memo.
type RoutingTextData struct {
	KitItems             []KitItem             `json:"kit_items"`
	MaterialSections     []string              `json:"material_sections"`
	DeliveryInstructions []DeliveryInstruction `json:"delivery_instructions"`
	RawText              string                `json:"raw_text"`
}
