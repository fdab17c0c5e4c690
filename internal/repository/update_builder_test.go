package repository

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/playmaker86/activity-booking/internal/domain"
)

func TestBuildActivityUpdate(t *testing.T) {
	t.Run("empty request produces no assignments", func(t *testing.T) {
		assignments, args := buildActivityUpdate(&domain.UpdateActivityRequest{})
		assert.Empty(t, assignments)
		assert.Empty(t, args)
	})

	t.Run("single field", func(t *testing.T) {
		title := "new title"
		assignments, args := buildActivityUpdate(&domain.UpdateActivityRequest{Title: &title})
		assert.Equal(t, []string{"title = $1"}, assignments)
		assert.Equal(t, []interface{}{"new title"}, args)
	})

	t.Run("placeholders number in field order", func(t *testing.T) {
		title := "t"
		price := 19.9
		end := time.Date(2026, 9, 1, 18, 0, 0, 0, time.UTC)
		assignments, args := buildActivityUpdate(&domain.UpdateActivityRequest{
			Title:   &title,
			EndTime: &end,
			Price:   &price,
		})
		assert.Equal(t, []string{"title = $1", "end_time = $2", "price = $3"}, assignments)
		assert.Equal(t, []interface{}{"t", end, 19.9}, args)
	})

	t.Run("zero values still count as set", func(t *testing.T) {
		price := 0.0
		assignments, args := buildActivityUpdate(&domain.UpdateActivityRequest{Price: &price})
		assert.Equal(t, []string{"price = $1"}, assignments)
		assert.Equal(t, []interface{}{0.0}, args)
	})
}

func TestBuildUserUpdate(t *testing.T) {
	t.Run("empty request produces no assignments", func(t *testing.T) {
		assignments, args := buildUserUpdate(&domain.UpdateUserRequest{})
		assert.Empty(t, assignments)
		assert.Empty(t, args)
	})

	t.Run("all fields in declaration order", func(t *testing.T) {
		nickname := "小王"
		avatar := "https://cdn.example.com/a.png"
		phone := "13800138000"
		gender := 1
		country := "中国"
		province := "广东"
		city := "深圳"
		language := "zh_CN"
		assignments, args := buildUserUpdate(&domain.UpdateUserRequest{
			Nickname: &nickname,
			Avatar:   &avatar,
			Phone:    &phone,
			Gender:   &gender,
			Country:  &country,
			Province: &province,
			City:     &city,
			Language: &language,
		})
		assert.Equal(t, []string{
			"nickname = $1",
			"avatar = $2",
			"phone = $3",
			"gender = $4",
			"country = $5",
			"province = $6",
			"city = $7",
			"language = $8",
		}, assignments)
		assert.Len(t, args, 8)
	})

	t.Run("gender zero resets to unknown", func(t *testing.T) {
		gender := 0
		assignments, args := buildUserUpdate(&domain.UpdateUserRequest{Gender: &gender})
		assert.Equal(t, []string{"gender = $1"}, assignments)
		assert.Equal(t, []interface{}{0}, args)
	})
}
