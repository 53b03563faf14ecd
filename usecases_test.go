package penumbra_test

import (
	"strings"
	"testing"

	"github.com/dklassen/penumbra"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Profile is the light side: the object the application works with. Its dark
// side is the snake_cased storage row it is persisted as.
type Profile struct {
	FirstName string
	LastName  string
	Level     int
	Tags      []string
}

var (
	firstNameField = penumbra.StringKey("firstName")
	lastNameField  = penumbra.StringKey("lastName")
	levelField     = penumbra.StringKey("level")
	tagsField      = penumbra.StringKey("tags")
)

// JSON numbers decode as float64; the domain wants an int.
func jsonNumberToInt(value any) any {
	switch n := value.(type) {
	case float64:
		return int(n)
	case int:
		return n
	default:
		return 0
	}
}

func csvToTags(value any) any {
	s, ok := value.(string)
	if !ok || s == "" {
		return []string{}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}

func tagsToCSV(value any) any {
	tags, ok := value.([]string)
	if !ok {
		return ""
	}
	return strings.Join(tags, ",")
}

func newProfile(assembled, _ penumbra.Record) Profile {
	firstName, _ := penumbra.GetField[string](assembled, firstNameField)
	lastName, _ := penumbra.GetField[string](assembled, lastNameField)
	level, _ := penumbra.GetField[int](assembled, levelField)
	tags, _ := penumbra.GetField[[]string](assembled, tagsField)

	return Profile{
		FirstName: firstName,
		LastName:  lastName,
		Level:     level,
		Tags:      tags,
	}
}

func newProfileMapper() *penumbra.Mapper[Profile, penumbra.Record] {
	return penumbra.Create[Profile, penumbra.Record]().
		UseNameTransformer(toSnake).
		RegisterMapping(firstNameField).
		RegisterMapping(lastNameField).
		RegisterMapping(
			levelField,
			penumbra.WithToLightTransformer(jsonNumberToInt),
		).
		RegisterMapping(
			tagsField,
			penumbra.WithToDarkTransformer(tagsToCSV),
			penumbra.WithToLightTransformer(csvToTags),
		).
		UseFactory(newProfile)
}

func TestProfileFromWirePayload(t *testing.T) {
	payload := []byte(`{
		"first_name": "Tom",
		"last_name": "Bombadil",
		"level": 12,
		"tags": "eldest, singer"
	}`)

	var row map[string]any
	require.NoError(t, json.Unmarshal(payload, &row))

	mapper := newProfileMapper()
	profile := mapper.MapToLight(penumbra.RecordFromStrings(row))

	assert.Equal(t, Profile{
		FirstName: "Tom",
		LastName:  "Bombadil",
		Level:     12,
		Tags:      []string{"eldest", "singer"},
	}, profile)
}

func TestProfileToWirePayload(t *testing.T) {
	mapper := newProfileMapper()

	dark := mapper.MapToDark(penumbra.Record{
		firstNameField: "Tom",
		lastNameField:  "Bombadil",
		levelField:     12,
		tagsField:      []string{"eldest", "singer"},
	})

	row, ok := dark.Strings()
	require.True(t, ok)

	payload, err := json.Marshal(row)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	assert.Equal(t, map[string]any{
		"first_name": "Tom",
		"last_name":  "Bombadil",
		"level":      float64(12),
		"tags":       "eldest,singer",
	}, decoded)
}

// A partial update carries only the columns that changed, the shape a PATCH
// handler or an UPDATE statement wants.
func TestProfilePartialUpdate(t *testing.T) {
	mapper := newProfileMapper()

	columns := mapper.MapPartialToDark(penumbra.Record{
		levelField: 13,
		tagsField:  []string{"eldest", "singer", "master"},
	}, false)

	assert.Equal(t, penumbra.Record{
		penumbra.StringKey("level"): 13,
		penumbra.StringKey("tags"):  "eldest,singer,master",
	}, columns)
}

func TestProfileBatchFromStorage(t *testing.T) {
	rows := []penumbra.Record{
		penumbra.RecordFromStrings(map[string]any{
			"first_name": "Tom", "last_name": "Bombadil", "level": float64(12), "tags": "eldest",
		}),
		penumbra.RecordFromStrings(map[string]any{
			"first_name": "Fredegar", "last_name": "Bolger", "level": float64(1), "tags": "",
		}),
	}

	profiles := newProfileMapper().ArrayMapToLight(rows)

	require.Len(t, profiles, 2)
	assert.Equal(t, "Tom", profiles[0].FirstName)
	assert.Equal(t, 12, profiles[0].Level)
	assert.Equal(t, "Bolger", profiles[1].LastName)
	assert.Equal(t, []string{}, profiles[1].Tags)
}
