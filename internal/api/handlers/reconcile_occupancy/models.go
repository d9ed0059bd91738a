package reconcile_occupancy

import (
	reconcileOccupancy "github.com/m04kA/SMC-ParkingService/internal/usecase/reconcile_occupancy"
)

// ClassResult результат реконсиляции по одному классу ТС
type ClassResult struct {
	Class    string `json:"class"`
	Previous int    `json:"previous"`
	Counted  int    `json:"counted"`
	Drifted  bool   `json:"drifted"`
}

// ReconcileResponse HTTP response model
type ReconcileResponse struct {
	LocationID int64         `json:"locationId"`
	Corrected  bool          `json:"corrected"`
	Results    []ClassResult `json:"results"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *reconcileOccupancy.Response) *ReconcileResponse {
	results := make([]ClassResult, len(resp.Results))
	for i, r := range resp.Results {
		results[i] = ClassResult{
			Class:    r.Class,
			Previous: r.Previous,
			Counted:  r.Counted,
			Drifted:  r.Drifted,
		}
	}

	return &ReconcileResponse{
		LocationID: resp.LocationID,
		Corrected:  resp.Corrected,
		Results:    results,
	}
}
