package models

import "time"

// MarketContract represents one tradable side of a prediction-market
// event: a yes/no contract that pays $1 if the named team wins.
type MarketContract struct {
	Ticker        string    `json:"ticker" validate:"required"`
	Sport         string    `json:"sport" validate:"required"`
	SideLabel     string    `json:"side_label"`
	Title         string    `json:"title"`
	YesPriceCents int       `json:"yes_price_cents" validate:"min=1,max=99"`
	MinContracts  int       `json:"min_contracts"`
	FeeScheduleID string    `json:"fee_schedule_id"`
	CommenceTime  time.Time `json:"commence_time"`
}
