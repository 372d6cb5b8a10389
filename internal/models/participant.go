package models

import "fmt"

// Participant identifies one shooter entering a contest
type Participant struct {
	ID   int64  `db:"player_id" json:"id" mapstructure:"id" validate:"required,gt=0"`
	Name string `db:"name" json:"name" mapstructure:"name" validate:"required"`
}

// String returns the participant as "Name (id)"
func (p Participant) String() string {
	return fmt.Sprintf("%s (%d)", p.Name, p.ID)
}
