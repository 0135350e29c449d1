package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectTypeString(t *testing.T) {
	for _, name := range []string{"Project", "Dataset", "Plate", "Screen"} {
		objType, err := ObjectTypeString(name)
		require.NoError(t, err)
		assert.Equal(t, name, objType.String())
		assert.True(t, objType.IsAObjectType())
	}

	_, err := ObjectTypeString("Image")
	assert.Error(t, err)

	// Names are case sensitive, matching what the host webapp sends.
	_, err = ObjectTypeString("project")
	assert.Error(t, err)
}

func TestObjectTypeJSON(t *testing.T) {
	data, err := json.Marshal(ObjectTypePlate)
	require.NoError(t, err)
	assert.Equal(t, `"Plate"`, string(data))

	var objType ObjectType
	require.NoError(t, json.Unmarshal([]byte(`"Screen"`), &objType))
	assert.Equal(t, ObjectTypeScreen, objType)

	assert.Error(t, json.Unmarshal([]byte(`"Well"`), &objType))
}
