package types

import "github.com/google/uuid"

// RankedUser is one leaderboard row. Position is 1-based within the league.
// Zone membership is presentational only; no component performs the weekly
// promotion/demotion itself.
type RankedUser struct {
	UserID      uuid.UUID `json:"user_id"`
	FirstName   string    `json:"first_name"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
	GlobalXP    int       `json:"global_xp"`
	GlobalLevel int       `json:"global_level"`
	Position    int       `json:"position"`
	InPromotion bool      `json:"in_promotion_zone"`
	InDemotion  bool      `json:"in_demotion_zone"`
}

type RankInfo struct {
	Rank        int    `json:"rank"`
	League      string `json:"league"`
	GlobalXP    int    `json:"global_xp"`
	GlobalLevel int    `json:"global_level"`
}
