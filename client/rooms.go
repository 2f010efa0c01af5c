package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// Room creation and listing are plain HTTP against the game server,
// outside the game channel.

type createRoomRequest struct {
	RoomName string `json:"room_name"`
}

type createRoomResponse struct {
	RoomID  string `json:"room_id"`
	Message string `json:"message"`
}

// RoomInfo is one entry of the room list.
type RoomInfo struct {
	RoomID      string `json:"room_id"`
	PlayerCount int    `json:"player_count"`
	GamePhase   string `json:"game_phase"`
}

type roomsResponse struct {
	Rooms []RoomInfo `json:"rooms"`
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

// CreateRoom asks the server for a fresh room and returns its id.
func CreateRoom(ctx context.Context, server, roomName string) (string, error) {
	body, err := json.Marshal(createRoomRequest{RoomName: roomName})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://"+server+"/create_room", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("create room: status %d", res.StatusCode)
	}

	out := createRoomResponse{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("create room: %w", err)
	}
	if out.RoomID == "" {
		return "", fmt.Errorf("create room: empty room id")
	}
	return out.RoomID, nil
}

// ListRooms fetches the active room list.
func ListRooms(ctx context.Context, server string) ([]RoomInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, "http://"+server+"/rooms", nil)
	if err != nil {
		return nil, err
	}

	res, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("list rooms: status %d", res.StatusCode)
	}

	out := roomsResponse{}
	if err := json.NewDecoder(res.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}
	return out.Rooms, nil
}
