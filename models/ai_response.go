package models

// AiResponse is the classifier's output for a single clothing image.
// It is transient: its fields are copied into ItemDetails when the user
// confirms the analysis, never stored verbatim.
type AiResponse struct {
	ClothingType        string   `json:"clothingType"`
	ClothingCategory    string   `json:"clothingCategory"`
	Material            string   `json:"material"`
	FabricComposition   string   `json:"fabricComposition"`
	LongevityScore      float64  `json:"longevityScore"`
	MaintenanceTips     []string `json:"maintenanceTips"`
	CO2Consumption      string   `json:"co2Consumption"`
	SustainabilityScore float64  `json:"sustainabilityScore"`
	CompatibleItems     []string `json:"compatibleItems,omitempty"`
}
