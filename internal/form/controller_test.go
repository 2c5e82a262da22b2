package form

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainErrors "github.com/thomas-vilte/dishform/internal/errors"
	"github.com/thomas-vilte/dishform/internal/feedback"
	"github.com/thomas-vilte/dishform/internal/httpclient"
	"github.com/thomas-vilte/dishform/internal/models"
)

type MockSubmitter struct {
	mock.Mock
}

func (m *MockSubmitter) PostJSON(ctx context.Context, path string, body any) (*httpclient.Response, error) {
	args := m.Called(ctx, path, body)
	if resp, ok := args.Get(0).(*httpclient.Response); ok {
		return resp, args.Error(1)
	}
	return nil, args.Error(1)
}

func fillSoup(t *testing.T, c *Controller) {
	t.Helper()
	c.SetName("Tomato soup")
	require.NoError(t, c.SetPreparationTimeText("00:30:00"))
	require.NoError(t, c.SetDishType("soup"))
	c.SetSpicinessScale("3")
}

func TestController_VisibleFields(t *testing.T) {
	tests := []struct {
		dishType string
		want     []models.FieldName
	}{
		{dishType: "", want: []models.FieldName{models.FieldDishName, models.FieldPreparationTime, models.FieldDishType}},
		{dishType: "pizza", want: []models.FieldName{models.FieldDishName, models.FieldPreparationTime, models.FieldDishType, models.FieldNoOfSlices, models.FieldDiameter}},
		{dishType: "soup", want: []models.FieldName{models.FieldDishName, models.FieldPreparationTime, models.FieldDishType, models.FieldSpicinessScale}},
		{dishType: "sandwich", want: []models.FieldName{models.FieldDishName, models.FieldPreparationTime, models.FieldDishType, models.FieldSlicesOfBread}},
	}

	for _, tt := range tests {
		t.Run("type "+tt.dishType, func(t *testing.T) {
			c := NewController(&MockSubmitter{})
			require.NoError(t, c.SetDishType(tt.dishType))

			var got []models.FieldName
			for _, f := range c.VisibleFields() {
				got = append(got, f.Name)
			}

			assert.Equal(t, tt.want, got)
		})
	}
}

func TestController_SetDishType_Unknown(t *testing.T) {
	c := NewController(&MockSubmitter{})
	require.NoError(t, c.SetDishType("pizza"))

	err := c.SetDishType("lasagna")

	assert.ErrorIs(t, err, domainErrors.ErrUnknownDishType)
	assert.Equal(t, models.DishPizza, c.Draft().DishType)
}

func TestController_SetDiameter(t *testing.T) {
	c := NewController(&MockSubmitter{})

	require.NoError(t, c.SetDiameter("15"))
	assert.Equal(t, "15.00", c.Draft().Pizza.Diameter)

	require.NoError(t, c.SetDiameter("20.5"))
	assert.Equal(t, "20.50", c.Draft().Pizza.Diameter)

	err := c.SetDiameter("huge")
	assert.ErrorIs(t, err, domainErrors.ErrInvalidDiameter)
	assert.Equal(t, "20.50", c.Draft().Pizza.Diameter, "rejected input keeps the previous value")

	require.NoError(t, c.SetDiameter(""))
	assert.Empty(t, c.Draft().Pizza.Diameter)
}

func TestController_SetPreparationTime(t *testing.T) {
	c := NewController(&MockSubmitter{})
	picker := time.Date(2024, 3, 3, 3, 3, 45, 0, time.Local)

	c.SetPreparationTime(&picker)

	d := c.Draft()
	assert.Equal(t, "03:03:45", d.PreparationTime)
	require.NotNil(t, d.PreparationPicker)
	assert.True(t, picker.Equal(*d.PreparationPicker))

	t.Run("malformed text changes nothing", func(t *testing.T) {
		err := c.SetPreparationTimeText("3h")

		assert.ErrorIs(t, err, domainErrors.ErrInvalidPreparationTime)
		assert.Equal(t, "03:03:45", c.Draft().PreparationTime)
	})

	t.Run("blank text clears", func(t *testing.T) {
		require.NoError(t, c.SetPreparationTimeText(""))

		assert.Empty(t, c.Draft().PreparationTime)
		assert.Nil(t, c.Draft().PreparationPicker)
	})
}

func TestController_Set(t *testing.T) {
	c := NewController(&MockSubmitter{})

	require.NoError(t, c.Set(models.FieldDishName, "Margherita"))
	require.NoError(t, c.Set(models.FieldDishType, "pizza"))
	require.NoError(t, c.Set(models.FieldNoOfSlices, "6"))
	require.NoError(t, c.Set(models.FieldDiameter, "30"))
	require.NoError(t, c.Set(models.FieldPreparationTime, "00:20:00"))

	d := c.Draft()
	assert.Equal(t, "Margherita", d.Name)
	assert.Equal(t, "6", d.Pizza.NoOfSlices)
	assert.Equal(t, "30.00", d.Pizza.Diameter)
	assert.Equal(t, "00:20:00", d.PreparationTime)

	assert.Error(t, c.Set(models.FieldName("garnish"), "basil"))
}

func TestController_Reset(t *testing.T) {
	c := NewController(&MockSubmitter{})
	fillSoup(t, c)

	c.Reset()
	first := c.Draft()
	c.Reset()
	second := c.Draft()

	assert.Equal(t, models.NewDraft(), first)
	assert.Equal(t, first, second)
	assert.Equal(t, "1", first.Pizza.NoOfSlices)
	assert.Equal(t, "1", first.Soup.SpicinessScale)
	assert.Equal(t, "1", first.Sandwich.SlicesOfBread)
}

func TestController_Submit(t *testing.T) {
	t.Run("should not call the service when validation fails", func(t *testing.T) {
		// Arrange
		submitter := &MockSubmitter{}
		c := NewController(submitter)
		require.NoError(t, c.SetPreparationTimeText("00:30:00"))
		require.NoError(t, c.SetDishType("soup"))

		// Act
		result, err := c.Submit(context.Background())

		// Assert
		assert.Nil(t, result)
		var verrs ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.NotEmpty(t, verrs.For(models.FieldDishName))
		assert.Equal(t, feedback.Idle, c.Feedback().State())
		submitter.AssertNotCalled(t, "PostJSON", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("should post only the selected variant and reset on success", func(t *testing.T) {
		// Arrange
		submitter := &MockSubmitter{}
		c := NewController(submitter, WithDishesPath("recipes"))
		fillSoup(t, c)
		require.NoError(t, c.SetDiameter("40"))
		c.SetSlicesOfBread("9")

		want := models.SoupPayload{
			Name:            "Tomato soup",
			PreparationTime: "00:30:00",
			Type:            models.DishSoup,
			SpicinessScale:  3,
		}
		submitter.On("PostJSON", mock.Anything, "recipes", want).
			Return(&httpclient.Response{StatusCode: http.StatusCreated, Body: []byte(`{"id":"1"}`)}, nil).
			Once()

		// Act
		result, err := c.Submit(context.Background())

		// Assert
		require.NoError(t, err)
		assert.Equal(t, http.StatusCreated, result.StatusCode)
		assert.Equal(t, want, result.Payload)
		assert.Equal(t, models.NewDraft(), c.Draft())

		snap := c.Feedback().Snapshot()
		assert.Equal(t, feedback.Success, snap.State)
		assert.True(t, snap.NotificationOpen)
		assert.Equal(t, DefaultSuccessMessage, snap.Notification)
		submitter.AssertExpectations(t)
	})

	t.Run("should keep the draft and record the failure", func(t *testing.T) {
		// Arrange
		submitter := &MockSubmitter{}
		c := NewController(submitter)
		fillSoup(t, c)
		statusErr := &httpclient.StatusError{StatusCode: 500, Status: "500 Internal Server Error"}
		submitter.On("PostJSON", mock.Anything, DefaultDishesPath, mock.Anything).Return(nil, statusErr).Once()

		// Act
		result, err := c.Submit(context.Background())

		// Assert
		assert.Nil(t, result)
		assert.ErrorIs(t, err, domainErrors.ErrSubmissionFailed)
		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, 500, appErr.Context["status"])
		assert.Equal(t, "Tomato soup", c.Draft().Name)

		snap := c.Feedback().Snapshot()
		assert.Equal(t, feedback.Failed, snap.State)
		assert.Equal(t, statusErr, snap.Err)
	})

	t.Run("should leave transport failures without a status", func(t *testing.T) {
		submitter := &MockSubmitter{}
		c := NewController(submitter)
		fillSoup(t, c)
		submitter.On("PostJSON", mock.Anything, mock.Anything, mock.Anything).Return(nil, errors.New("connection refused")).Once()

		_, err := c.Submit(context.Background())

		var appErr *domainErrors.AppError
		require.ErrorAs(t, err, &appErr)
		_, hasStatus := appErr.Context["status"]
		assert.False(t, hasStatus)
	})

	t.Run("should refuse a second submission while one is in flight", func(t *testing.T) {
		// Arrange
		submitter := &MockSubmitter{}
		c := NewController(submitter)
		fillSoup(t, c)

		entered := make(chan struct{})
		release := make(chan struct{})
		submitter.On("PostJSON", mock.Anything, mock.Anything, mock.Anything).
			Run(func(mock.Arguments) {
				close(entered)
				<-release
			}).
			Return(&httpclient.Response{StatusCode: http.StatusOK}, nil).
			Once()

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = c.Submit(context.Background())
		}()
		<-entered

		// Act
		_, err := c.Submit(context.Background())
		close(release)
		wg.Wait()

		// Assert
		assert.ErrorIs(t, err, domainErrors.ErrSubmissionInFlight)
		submitter.AssertNumberOfCalls(t, "PostJSON", 1)
	})

	t.Run("editing after an outcome settles to idle", func(t *testing.T) {
		submitter := &MockSubmitter{}
		c := NewController(submitter)
		fillSoup(t, c)
		submitter.On("PostJSON", mock.Anything, mock.Anything, mock.Anything).
			Return(&httpclient.Response{StatusCode: http.StatusOK}, nil).Once()

		_, err := c.Submit(context.Background())
		require.NoError(t, err)
		c.SetName("Leek soup")

		snap := c.Feedback().Snapshot()
		assert.Equal(t, feedback.Idle, snap.State)
		assert.True(t, snap.NotificationOpen)
	})
}

func TestController_SubmitOverHTTP(t *testing.T) {
	var got map[string]interface{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/dishes", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		_ = json.NewDecoder(r.Body).Decode(&got)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	settings, err := httpclient.NewSettings(server.URL+"/", nil)
	require.NoError(t, err)
	c := NewController(httpclient.NewClient(settings, server.Client()))
	fillSoup(t, c)

	result, err := c.Submit(context.Background())

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.Equal(t, map[string]interface{}{
		"name":             "Tomato soup",
		"preparation_time": "00:30:00",
		"type":             "soup",
		"spiciness_scale":  float64(3),
	}, got)
}
