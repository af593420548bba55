package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validRoom() Room {
	return Room{
		ID:         "deluxe01",
		Type:       "deluxe",
		SizeM2:     45,
		View:       "sea",
		MaxGuests:  2,
		Facilities: []string{"wifi", "tv"},
		Price:      Price{Original: 120, Currency: "USD"},
	}
}

func TestRoomValidate(t *testing.T) {
	assert.NoError(t, validRoom().Validate())

	r := validRoom()
	r.ID = "ab"
	assert.Error(t, r.Validate())

	r = validRoom()
	r.ID = "deluxe 01"
	assert.Error(t, r.Validate())

	r = validRoom()
	r.Type = "penthouse"
	assert.Error(t, r.Validate())

	r = validRoom()
	r.SizeM2 = 20
	assert.Error(t, r.Validate())

	r = validRoom()
	r.View = "garden"
	assert.Error(t, r.Validate())

	r = validRoom()
	r.MaxGuests = 5
	assert.Error(t, r.Validate())

	r = validRoom()
	r.Price.Original = -1
	assert.Error(t, r.Validate())

	r = validRoom()
	r.Facilities = []string{"wifi", "wifi"}
	assert.Error(t, r.Validate())
}

func TestUnitValidate(t *testing.T) {
	u := Unit{ID: "1001", RoomID: "deluxe01", Floor: 1}
	assert.NoError(t, u.Validate())

	u = Unit{ID: "4012", RoomID: "deluxe01", Floor: 4}
	assert.NoError(t, u.Validate())

	cases := map[string]Unit{
		"too short":      {ID: "101", RoomID: "deluxe01", Floor: 1},
		"too long":       {ID: "10011", RoomID: "deluxe01", Floor: 1},
		"below range":    {ID: "1000", RoomID: "deluxe01", Floor: 1},
		"above range":    {ID: "4013", RoomID: "deluxe01", Floor: 4},
		"not numeric":    {ID: "10a1", RoomID: "deluxe01", Floor: 1},
		"floor mismatch": {ID: "2001", RoomID: "deluxe01", Floor: 1},
		"floor zero":     {ID: "1001", RoomID: "deluxe01", Floor: 0},
		"missing room":   {ID: "1001", Floor: 1},
	}
	for name, unit := range cases {
		assert.Error(t, unit.Validate(), name)
	}
}
