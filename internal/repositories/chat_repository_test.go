package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func stageNames(p []bson.D) []string {
	names := make([]string, len(p))
	for i, stage := range p {
		names[i] = stage[0].Key
	}
	return names
}

// The feed pipeline must window with a single $facet after the join and the
// sort, so the count and the page derive from one execution.
func TestChatFeedPipelineShape(t *testing.T) {
	p := chatFeedPipeline("42", 10, 5)

	require.Equal(t, []string{"$match", "$lookup", "$unwind", "$sort", "$facet"}, stageNames(p))

	facet := p[4][0].Value.(bson.M)
	require.Contains(t, facet, "total")
	require.Contains(t, facet, "page")

	page := facet["page"].(bson.A)
	require.Equal(t, bson.M{"$skip": int64(10)}, page[0])
	require.Equal(t, bson.M{"$limit": int64(5)}, page[1])
}

func TestChatFeedPipelineMatchesMembership(t *testing.T) {
	p := chatFeedPipeline("42", 0, 20)

	match := p[0][0].Value.(bson.M)
	require.Equal(t, "42", match["members.id"])
}

// A zero limit still counts but returns no rows; $limit itself rejects zero,
// so the page facet must not contain it.
func TestChatFeedPipelineZeroLimit(t *testing.T) {
	p := chatFeedPipeline("42", 0, 0)

	facet := p[4][0].Value.(bson.M)
	page := facet["page"].(bson.A)
	require.Len(t, page, 1)
	require.Contains(t, page[0].(bson.M), "$match")
}

// Message-less chats must survive the join: $unwind keeps null slots.
func TestChatFeedPipelineKeepsEmptyChats(t *testing.T) {
	p := chatFeedPipeline("42", 0, 20)

	unwind := p[2][0].Value.(bson.M)
	require.Equal(t, true, unwind["preserveNullAndEmptyArrays"])
}
