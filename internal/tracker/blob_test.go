package tracker

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeState_OlderShapeWithoutQueue(t *testing.T) {
	data := []byte(`{
		"exercisesOwed": 4,
		"log": [
			{"timestamp": "2024-03-04T14:03:00.000Z", "id": "squats", "title": "20 squats", "note": ""},
			{"timestamp": "2024-03-04T14:00:00.000Z", "id": "squats", "title": "20 squats", "note": ""}
		],
		"lastCheckedDate": "3/4/2024"
	}`)

	st := DecodeState(data)
	assert.Equal(t, 4, st.Ledger.Owed)
	require.Len(t, st.Log, 2)
	assert.True(t, st.Log[0].Timestamp.Before(st.Log[1].Timestamp))
	require.NotNil(t, st.Ledger.LastCheckedDate)
	assert.Equal(t, "2024-03-04", *st.Ledger.LastCheckedDate)
	assert.Empty(t, st.Queue)
}

func TestDecodeState_FieldsDefaultIndependently(t *testing.T) {
	data := []byte(`{
		"exercisesOwed": "lots",
		"log": {"not": "a list"},
		"lastCheckedDate": 17,
		"nextUpQueue": [{"id": "run", "title": "500m run", "icon": "run.png", "note": ""}]
	}`)

	st := DecodeState(data)
	assert.Equal(t, DefaultOwed, st.Ledger.Owed)
	assert.Empty(t, st.Log)
	assert.Nil(t, st.Ledger.LastCheckedDate)
	require.Len(t, st.Queue, 1)
	assert.Equal(t, "run", st.Queue[0].ExerciseID)
}

func TestDecodeState_NullOwedDefaults(t *testing.T) {
	st := DecodeState([]byte(`{"exercisesOwed": null, "log": [], "lastCheckedDate": "2024-03-04"}`))
	assert.Equal(t, DefaultOwed, st.Ledger.Owed)
	require.NotNil(t, st.Ledger.LastCheckedDate)
	assert.Equal(t, "2024-03-04", *st.Ledger.LastCheckedDate)

	st = DecodeState([]byte(`{"exercisesOwed": 0}`))
	assert.Equal(t, 0, st.Ledger.Owed)
}

func TestDecodeState_Garbage(t *testing.T) {
	for _, data := range []string{"", "null", "[]", "{{"} {
		st := DecodeState([]byte(data))
		assert.Equal(t, DefaultOwed, st.Ledger.Owed, "input %q", data)
		assert.Empty(t, st.Log)
		assert.Empty(t, st.Queue)
		assert.Nil(t, st.Ledger.LastCheckedDate)
	}
}

func TestDecodeState_DropsBadEntriesAndClampsOwed(t *testing.T) {
	data := []byte(`{
		"exercisesOwed": -3,
		"log": [
			{"timestamp": "yesterday", "id": "run", "title": "500m run"},
			{"timestamp": "2024-03-04T14:00:00Z", "id": "run", "title": "500m run"}
		],
		"lastCheckedDate": null
	}`)

	st := DecodeState(data)
	assert.Equal(t, 0, st.Ledger.Owed)
	assert.Len(t, st.Log, 1)
	assert.Nil(t, st.Ledger.LastCheckedDate)
}

func TestEncodeDecodeState(t *testing.T) {
	date := "2024-03-04"
	st := &State{
		Ledger: Ledger{Owed: 12, LastCheckedDate: &date},
		Log: []LogEntry{
			entry(time.Date(2024, 3, 4, 14, 0, 0, 123e6, time.UTC), "dumbbell", "8 reps dumbbell", "20lb"),
		},
		Queue: []QueueEntry{{ExerciseID: "plank", Title: "1 min plank", Icon: "plank.png"}},
	}

	data, err := EncodeState(st)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"timestamp": "2024-03-04T14:00:00.123Z"`)
	assert.Contains(t, string(data), `"nextUpQueue"`)

	assert.Equal(t, st, DecodeState(data))
}

func TestEncodeState_EmptyCollections(t *testing.T) {
	data, err := EncodeState(NewState())
	require.NoError(t, err)
	assert.Contains(t, string(data), `"log": []`)
	assert.Contains(t, string(data), `"nextUpQueue": []`)
	assert.Contains(t, string(data), `"lastCheckedDate": null`)
}
