package handler

import (
	"fmt"
	"time"

	"github.com/msomdec/pokedex/internal/domain"
)

const dateLayout = "2006-01-02"

// UserDTO is the JSON representation of a user. The password digest is
// never included.
type UserDTO struct {
	ID          int64   `json:"id"`
	FirstName   string  `json:"f_name"`
	MiddleName  string  `json:"m_name"`
	LastName    string  `json:"l_name"`
	DateOfBirth *string `json:"dob"`
	Gender      string  `json:"gender"`
	Email       string  `json:"email"`
	Phone       string  `json:"phonenumber"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func toUserDTO(u *domain.User) UserDTO {
	dto := UserDTO{
		ID:         u.ID,
		FirstName:  u.FirstName,
		MiddleName: u.MiddleName,
		LastName:   u.LastName,
		Gender:     u.Gender,
		Email:      u.Email,
		Phone:      u.Phone,
		CreatedAt:  u.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  u.UpdatedAt.Format(time.RFC3339),
	}
	if u.DateOfBirth != nil {
		d := u.DateOfBirth.Format(dateLayout)
		dto.DateOfBirth = &d
	}
	return dto
}

// CollectionEntryDTO is the JSON representation of a collection entry.
type CollectionEntryDTO struct {
	ID        int64  `json:"id,omitempty"`
	ImageURL  string `json:"pokeimg"`
	PokeID    int64  `json:"pokeid"`
	Name      string `json:"pokename"`
	Height    int    `json:"height"`
	Weight    int    `json:"weight"`
	Abilities string `json:"abilities"`
	Types     string `json:"poketypes"`
	CreatedAt string `json:"createdAt,omitempty"`
	UpdatedAt string `json:"updatedAt,omitempty"`
}

func toCollectionEntryDTO(e *domain.CollectionEntry) CollectionEntryDTO {
	dto := CollectionEntryDTO{
		ID:        e.ID,
		ImageURL:  e.ImageURL,
		PokeID:    e.PokeID,
		Name:      e.Name,
		Height:    e.Height,
		Weight:    e.Weight,
		Abilities: e.Abilities,
		Types:     e.Types,
	}
	if !e.CreatedAt.IsZero() {
		dto.CreatedAt = e.CreatedAt.Format(time.RFC3339)
		dto.UpdatedAt = e.UpdatedAt.Format(time.RFC3339)
	}
	return dto
}

func toCollectionEntryDTOs(entries []domain.CollectionEntry) []CollectionEntryDTO {
	dtos := make([]CollectionEntryDTO, len(entries))
	for i := range entries {
		dtos[i] = toCollectionEntryDTO(&entries[i])
	}
	return dtos
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp and
// reduces either to midnight UTC of the calendar date as written.
func parseDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	for _, layout := range []string{dateLayout, time.RFC3339} {
		if t, err := time.Parse(layout, *s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d, nil
		}
	}
	return nil, fmt.Errorf("%w: dob must be YYYY-MM-DD", domain.ErrInvalidInput)
}
