package accesscontrol

// User is an entry of the device user list.
type User struct {
	UserID     string   `json:"UserID"`
	UserName   string   `json:"UserName"`
	RoomNo     []string `json:"RoomNo"`
	Authority  int      `json:"Authority"`
	UserType   int      `json:"UserType"`
	UserStatus int      `json:"UserStatus"`
	Doors      []int    `json:"Doors"`
	// UseTime is -1 for unlimited use.
	UseTime int `json:"UseTime"`
}

// NewUser returns a regular user of the room allowed through
// doors 0 and 1 without limit.
func NewUser(id, name, room string) User {
	return User{
		UserID:    id,
		UserName:  name,
		RoomNo:    []string{room},
		Authority: 2, //nolint:gomnd
		Doors:     []int{0, 1},
		UseTime:   -1,
	}
}

const unboundedDate = "0000-00-00 00:00:00"

// Card is an entry of the device card list, linked to a user.
type Card struct {
	CardNo         string `json:"CardNo"`
	CardName       string `json:"CardName"`
	CardStatus     int    `json:"CardStatus"`
	CardType       int    `json:"CardType"`
	UserID         string `json:"UserID"`
	ValidDateStart string `json:"ValidDateStart"`
	ValidDateEnd   string `json:"ValidDateEnd"`
}

// NewCard returns a normal card of the user with no validity period.
func NewCard(number, name, userID string) Card {
	return Card{
		CardNo:         number,
		CardName:       name,
		UserID:         userID,
		ValidDateStart: unboundedDate,
		ValidDateEnd:   unboundedDate,
	}
}
