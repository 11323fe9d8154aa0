package fleet

type CreateVehicleRequest struct {
	Registration string   `json:"registration" binding:"required"`
	Make         string   `json:"make" binding:"required"`
	Model        string   `json:"model" binding:"required"`
	Year         int      `json:"year"`
	Mileage      int      `json:"mileage" binding:"gte=0"`
	Photos       []string `json:"photos"`

	DailyRate        float64 `json:"daily_rate" binding:"gte=0"`
	WeekendFlatRate  float64 `json:"weekend_flat_rate" binding:"gte=0"`
	DailyKmAllowance int     `json:"daily_km_allowance" binding:"gte=0"`
	UnlimitedMileage bool    `json:"unlimited_mileage"`
	PerKmOverageRate float64 `json:"per_km_overage_rate" binding:"gte=0"`
}

type UpdateVehicleRequest struct {
	Registration string   `json:"registration"`
	Make         string   `json:"make"`
	Model        string   `json:"model"`
	Year         int      `json:"year"`
	Photos       []string `json:"photos"`

	DailyRate        *float64 `json:"daily_rate" binding:"omitempty,gte=0"`
	WeekendFlatRate  *float64 `json:"weekend_flat_rate" binding:"omitempty,gte=0"`
	DailyKmAllowance *int     `json:"daily_km_allowance" binding:"omitempty,gte=0"`
	UnlimitedMileage *bool    `json:"unlimited_mileage"`
	PerKmOverageRate *float64 `json:"per_km_overage_rate" binding:"omitempty,gte=0"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=available maintenance retired"`
}
