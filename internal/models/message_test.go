package models

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMessageBodyVariant(t *testing.T) {
	require.True(t, (&Message{Text: "hi"}).HasValidBody())
	require.True(t, (&Message{PhotoURL: "https://cdn.example.com/a.jpg"}).HasValidBody())
	require.True(t, (&Message{VideoURL: "https://cdn.example.com/a.mp4"}).HasValidBody())

	require.False(t, (&Message{}).HasValidBody())
	require.False(t, (&Message{Text: "hi", PhotoURL: "https://cdn.example.com/a.jpg"}).HasValidBody())
}
