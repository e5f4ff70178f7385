package room

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyRoomName   = errors.New("room name cannot be empty")
	ErrRoomNameTooLong = errors.New("room name is too long (max 255 characters)")
	ErrInvalidCapacity = errors.New("room capacity must be at least 1")
	ErrEmptyLocation   = errors.New("room location cannot be empty")
)

const MaxRoomNameLength = 255

type Room struct {
	id        uuid.UUID
	name      string
	location  string
	capacity  int
	amenities []string
	isActive  bool
	createdAt time.Time
	updatedAt time.Time
}

func NewRoom(name, location string, capacity int, amenities []string) (*Room, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if strings.TrimSpace(location) == "" {
		return nil, ErrEmptyLocation
	}
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}

	return &Room{
		id:        uuid.New(),
		name:      strings.TrimSpace(name),
		location:  strings.TrimSpace(location),
		capacity:  capacity,
		amenities: amenities,
		isActive:  true,
	}, nil
}

func ReconstructRoom(
	id uuid.UUID,
	name, location string,
	capacity int,
	amenities []string,
	isActive bool,
	createdAt, updatedAt time.Time,
) *Room {
	return &Room{
		id:        id,
		name:      name,
		location:  location,
		capacity:  capacity,
		amenities: amenities,
		isActive:  isActive,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func validateName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyRoomName
	}
	if len(name) > MaxRoomNameLength {
		return ErrRoomNameTooLong
	}
	return nil
}

// Update replaces the descriptive fields of the room.
func (r *Room) Update(name, location string, capacity int, amenities []string, isActive bool) error {
	if err := validateName(name); err != nil {
		return err
	}
	if strings.TrimSpace(location) == "" {
		return ErrEmptyLocation
	}
	if capacity < 1 {
		return ErrInvalidCapacity
	}

	r.name = strings.TrimSpace(name)
	r.location = strings.TrimSpace(location)
	r.capacity = capacity
	r.amenities = amenities
	r.isActive = isActive
	return nil
}

// Fits reports whether the requested headcount fits the room.
func (r *Room) Fits(attendees int) bool {
	return attendees <= r.capacity
}

func (r *Room) Deactivate() {
	r.isActive = false
}

func (r *Room) ID() uuid.UUID        { return r.id }
func (r *Room) Name() string         { return r.name }
func (r *Room) Location() string     { return r.location }
func (r *Room) Capacity() int        { return r.capacity }
func (r *Room) Amenities() []string  { return r.amenities }
func (r *Room) IsActive() bool       { return r.isActive }
func (r *Room) CreatedAt() time.Time { return r.createdAt }
func (r *Room) UpdatedAt() time.Time { return r.updatedAt }
