package telegram

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mymmrac/telego"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AlazarStudio/kchr-tourism-backend/content"
	"github.com/AlazarStudio/kchr-tourism-backend/filestore"
	"github.com/AlazarStudio/kchr-tourism-backend/utils"
)

// mockBot implements BotAPI.
type mockBot struct {
	mock.Mock
}

func (m *mockBot) GetUpdates(ctx context.Context, params *telego.GetUpdatesParams) ([]telego.Update, error) {
	args := m.Called(ctx, params)
	if updates, ok := args.Get(0).([]telego.Update); ok {
		return updates, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBot) GetFile(ctx context.Context, params *telego.GetFileParams) (*telego.File, error) {
	args := m.Called(ctx, params)
	if file, ok := args.Get(0).(*telego.File); ok {
		return file, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockBot) FileDownloadURL(filepath string) string {
	args := m.Called(filepath)
	return args.String(0)
}

func springFestivalUpdate() telego.Update {
	return telego.Update{
		UpdateID: 10,
		ChannelPost: &telego.Message{
			MessageID: 500,
			Chat:      telego.Chat{ID: -100123},
			Date:      time.Date(2024, 5, 3, 14, 30, 0, 0, time.UTC).Unix(),
			Caption:   "Spring Festival\n\nJoin us downtown.\n\n#publish",
			Photo: []telego.PhotoSize{
				{FileID: "small", Width: 90, Height: 60},
				{FileID: "festival-photo", Width: 1280, Height: 960},
			},
		},
	}
}

func newTestPipeline(t *testing.T, bot BotAPI) (*Pipeline, *content.Store, *filestore.FakeFileStore) {
	t.Helper()
	db := utils.CreateTempDB(t)
	store := content.NewStore(db)
	files := filestore.NewFakeFileStore()
	return NewPipeline(bot, files, store, -100123), store, files
}

func TestPipelineRun(t *testing.T) {
	t.Run("end to end single-photo post", func(t *testing.T) {
		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{springFestivalUpdate()}, nil)
		bot.On("GetFile", mock.Anything, &telego.GetFileParams{FileID: "festival-photo"}).
			Return(&telego.File{FileID: "festival-photo", FilePath: "photos/file_1.jpg"}, nil)
		bot.On("FileDownloadURL", "photos/file_1.jpg").Return("https://cdn.example/photos/file_1.jpg")

		pipeline, store, files := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 1, len(summaries))

		summary := summaries[0]
		require.Equal(t, 500, summary.MessageID)
		require.Equal(t, "Spring Festival", summary.Title)
		require.Equal(t, "Join us downtown.", summary.Text)
		require.Equal(t, "2024-05-03", summary.Date)
		require.Equal(t, []Photo{{URL: "/uploads/festival-photo.jpg"}}, summary.Photos)

		// highest-resolution variant stored under the deterministic name
		_, stored := files.Files["festival-photo.jpg"]
		require.True(t, stored)

		// record persisted with the parsed fields
		news, total, err := store.ListNews(context.Background(), content.ListQuery{RangeEnd: 9})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
		require.Equal(t, "Spring Festival", news[0].Title)
		require.Equal(t, "Join us downtown.", news[0].Text)
		require.Equal(t, time.Date(2024, 5, 3, 0, 0, 0, 0, time.UTC), news[0].Date.UTC())
	})

	t.Run("untagged groups are excluded from the output", func(t *testing.T) {
		update := springFestivalUpdate()
		update.ChannelPost.Caption = "Spring Festival\n\nJoin us downtown."

		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{update}, nil)

		pipeline, store, _ := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 0, len(summaries))

		_, total, err := store.ListNews(context.Background(), content.ListQuery{RangeEnd: 9})
		require.NoError(t, err)
		require.Equal(t, int64(0), total)
	})

	t.Run("control channel posts are never ingested", func(t *testing.T) {
		update := springFestivalUpdate()
		update.ChannelPost.Chat.ID = -1002152382917
		update.ChannelPost.Photo = nil

		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{update}, nil)

		pipeline, _, _ := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 0, len(summaries))
	})

	t.Run("group without photos yields an empty photo list", func(t *testing.T) {
		update := springFestivalUpdate()
		update.ChannelPost.Photo = nil

		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{update}, nil)

		pipeline, _, _ := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 1, len(summaries))
		require.Equal(t, 0, len(summaries[0].Photos))
	})

	t.Run("re-running does not create a duplicate record but still reports the group", func(t *testing.T) {
		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{springFestivalUpdate()}, nil)
		bot.On("GetFile", mock.Anything, mock.Anything).
			Return(&telego.File{FileID: "festival-photo", FilePath: "photos/file_1.jpg"}, nil)
		bot.On("FileDownloadURL", mock.Anything).Return("https://cdn.example/photos/file_1.jpg")

		pipeline, store, _ := newTestPipeline(t, bot)

		_, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 1, len(summaries))

		_, total, err := store.ListNews(context.Background(), content.ListQuery{RangeEnd: 9})
		require.NoError(t, err)
		require.Equal(t, int64(1), total)
	})

	t.Run("failed download drops the photo, not the group", func(t *testing.T) {
		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{springFestivalUpdate()}, nil)
		bot.On("GetFile", mock.Anything, mock.Anything).Return(nil, errors.New("file is unavailable"))

		pipeline, store, _ := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 1, len(summaries))
		require.Equal(t, 0, len(summaries[0].Photos))

		news, _, err := store.ListNews(context.Background(), content.ListQuery{RangeEnd: 9})
		require.NoError(t, err)
		require.Equal(t, "Spring Festival", news[0].Title)
	})

	t.Run("upstream failure surfaces as an error", func(t *testing.T) {
		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return(nil, errors.New("telegram is down"))

		pipeline, _, _ := newTestPipeline(t, bot)

		_, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.Error(t, err)
	})

	t.Run("media group photos keep post order", func(t *testing.T) {
		first := springFestivalUpdate()
		first.ChannelPost.MediaGroupID = "album9"
		first.ChannelPost.Photo = []telego.PhotoSize{{FileID: "photo-a"}}

		second := telego.Update{
			UpdateID: 11,
			ChannelPost: &telego.Message{
				MessageID:    501,
				Chat:         telego.Chat{ID: -100123},
				Date:         first.ChannelPost.Date,
				MediaGroupID: "album9",
				Photo:        []telego.PhotoSize{{FileID: "photo-b"}},
			},
		}

		bot := new(mockBot)
		bot.On("GetUpdates", mock.Anything, mock.Anything).Return([]telego.Update{first, second}, nil)
		bot.On("GetFile", mock.Anything, &telego.GetFileParams{FileID: "photo-a"}).
			Return(&telego.File{FilePath: "photos/a.jpg"}, nil)
		bot.On("GetFile", mock.Anything, &telego.GetFileParams{FileID: "photo-b"}).
			Return(&telego.File{FilePath: "photos/b.jpg"}, nil)
		bot.On("FileDownloadURL", "photos/a.jpg").Return("https://cdn.example/a.jpg")
		bot.On("FileDownloadURL", "photos/b.jpg").Return("https://cdn.example/b.jpg")

		pipeline, _, _ := newTestPipeline(t, bot)

		summaries, err := pipeline.Run(context.Background(), KindNews, "#publish")
		require.NoError(t, err)
		require.Equal(t, 1, len(summaries))
		require.Equal(t, []Photo{
			{URL: "/uploads/photo-a.jpg"},
			{URL: "/uploads/photo-b.jpg"},
		}, summaries[0].Photos)
	})
}
