// Package accesscontrol calls the access control methods of the
// device over an authenticated session.
package accesscontrol

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/qdm12/vtoctl/internal/errors"
)

type AccessControl struct {
	caller Caller
}

func New(caller Caller) *AccessControl {
	return &AccessControl{
		caller: caller,
	}
}

type openDoorParams struct {
	Type   string `json:"Type"`
	UserID any    `json:"UserID,omitempty"`
}

// OpenDoor opens the door on the given channel remotely, on behalf
// of userID if it is not empty.
func (a *AccessControl) OpenDoor(ctx context.Context, channel int, userID string) (err error) {
	object, err := a.instance(ctx, channel)
	if err != nil {
		return fmt.Errorf("getting access control instance: %w", err)
	}

	params := openDoorParams{
		Type:   "Remote",
		UserID: numberOrString(userID),
	}
	_, err = a.caller.Call(ctx, "accessControl.openDoor", params, object)
	if err != nil {
		return fmt.Errorf("opening door: %w", err)
	}
	return nil
}

func (a *AccessControl) instance(ctx context.Context, channel int) (
	object json.RawMessage, err error) {
	params := map[string]int{"Channel": channel}
	response, err := a.caller.Query(ctx, "accessControl.factory.instance", params, nil)
	if err != nil {
		return nil, err
	}

	var objectID json.Number
	err = json.Unmarshal(response.Result, &objectID)
	if err != nil {
		return nil, fmt.Errorf("%w: object id %s is not a number",
			errors.ErrProtocol, response.Result)
	}
	return json.RawMessage(objectID.String()), nil
}

// InsertUsers adds the users to the device user list.
func (a *AccessControl) InsertUsers(ctx context.Context, users []User) (err error) {
	params := map[string][]User{"UserList": users}
	_, err = a.caller.Call(ctx, "AccessUser.insertMulti", params, nil)
	if err != nil {
		return fmt.Errorf("inserting users: %w", err)
	}
	return nil
}

// InsertCards adds the cards to the device card list.
func (a *AccessControl) InsertCards(ctx context.Context, cards []Card) (err error) {
	params := map[string][]Card{"CardList": cards}
	_, err = a.caller.Call(ctx, "AccessCard.insertMulti", params, nil)
	if err != nil {
		return fmt.Errorf("inserting cards: %w", err)
	}
	return nil
}

func numberOrString(s string) any {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return s
	}
	return n
}
