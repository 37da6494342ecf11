package embeddings

import (
	"context"
	"errors"
	"testing"

	goopenai "github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/Achu-shankar/Syllabi-sub002/api/pkg/openai"
)

func TestEmbedderSuite(t *testing.T) {
	suite.Run(t, new(EmbedderSuite))
}

type EmbedderSuite struct {
	suite.Suite

	ctx      context.Context
	client   *openai.MockClient
	embedder *OpenAIEmbedder
}

func (suite *EmbedderSuite) SetupTest() {
	suite.ctx = context.Background()

	ctrl := gomock.NewController(suite.T())
	suite.client = openai.NewMockClient(ctrl)

	embedder, err := NewOpenAIEmbedder(suite.client, "", 100)
	suite.Require().NoError(err)
	suite.embedder = embedder
}

func (suite *EmbedderSuite) TestEmbed_CachesQueries() {
	suite.client.EXPECT().CreateEmbeddings(gomock.Any(), goopenai.EmbeddingRequest{
		Input: []string{"send a slack message"},
		Model: goopenai.SmallEmbedding3,
	}).Return(goopenai.EmbeddingResponse{
		Data: []goopenai.Embedding{{Embedding: []float32{0.5, 0.25}}},
	}, nil).Times(1)

	first, err := suite.embedder.Embed(suite.ctx, "  send a slack message ")
	suite.Require().NoError(err)
	suite.Equal([]float32{0.5, 0.25}, first)

	second, err := suite.embedder.Embed(suite.ctx, "send a slack message")
	suite.Require().NoError(err)
	suite.Equal(first, second)
}

func (suite *EmbedderSuite) TestEmbed_EmptyText() {
	_, err := suite.embedder.Embed(suite.ctx, "   ")
	suite.ErrorIs(err, ErrEmptyText)
}

func (suite *EmbedderSuite) TestEmbed_ClientError() {
	suite.client.EXPECT().CreateEmbeddings(gomock.Any(), gomock.Any()).
		Return(goopenai.EmbeddingResponse{}, errors.New("boom"))

	_, err := suite.embedder.Embed(suite.ctx, "query")
	suite.ErrorContains(err, "boom")
}

func (suite *EmbedderSuite) TestEmbed_EmptyResponse() {
	suite.client.EXPECT().CreateEmbeddings(gomock.Any(), gomock.Any()).
		Return(goopenai.EmbeddingResponse{}, nil)

	_, err := suite.embedder.Embed(suite.ctx, "query")
	suite.Error(err)
}

func (suite *EmbedderSuite) TestSkillText() {
	suite.Equal("Send Message. Posts to a channel. communication", SkillText("Send Message", "Posts to a channel", "communication"))
	suite.Equal("Only name", SkillText(" Only name ", "", ""))
}
