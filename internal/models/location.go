package models

// LocationDescriptor describes a shot location in court coordinates
type LocationDescriptor struct {
	X            int    `json:"loc_x"`
	Y            int    `json:"loc_y"`
	ZoneArea     string `json:"shot_zone_area"`
	DistanceFeet int    `json:"shot_distance"`
	ShotType     string `json:"shot_type"`
}

const threePointShot = "3PT Field Goal"

// CanonicalLocations are the seven contest spots: five rack positions from
// corner to corner, then the two long-range dew ball spots.
var CanonicalLocations = []LocationDescriptor{
	{X: -220, Y: 0, ZoneArea: "Left Side(L)", DistanceFeet: 22, ShotType: threePointShot},
	{X: -150, Y: 220, ZoneArea: "Left Side Center(LC)", DistanceFeet: 24, ShotType: threePointShot},
	{X: 0, Y: 260, ZoneArea: "Center(C)", DistanceFeet: 24, ShotType: threePointShot},
	{X: 150, Y: 220, ZoneArea: "Right Side Center(RC)", DistanceFeet: 24, ShotType: threePointShot},
	{X: 220, Y: 0, ZoneArea: "Right Side(R)", DistanceFeet: 22, ShotType: threePointShot},
	{X: -92, Y: 290, ZoneArea: "Left Side Center(LC)", DistanceFeet: 30, ShotType: threePointShot},
	{X: 92, Y: 290, ZoneArea: "Right Side Center(RC)", DistanceFeet: 30, ShotType: threePointShot},
}

// RackLocationCount is the number of regular rack positions in CanonicalLocations
const RackLocationCount = 5
