package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vinixspb/vnxChooseApple-bot/internal/constant"
	"github.com/vinixspb/vnxChooseApple-bot/internal/dto"
	"github.com/vinixspb/vnxChooseApple-bot/internal/repository/memory"
	"github.com/vinixspb/vnxChooseApple-bot/pkg/catalog"
)

type capturingPublisher struct {
	payloads [][]byte
}

func (p *capturingPublisher) Publish(_ context.Context, payload []byte) error {
	p.payloads = append(p.payloads, payload)
	return nil
}

func newSelectionFixture(records []catalog.Record) (ISelectionService, *capturingPublisher) {
	src := &fakeSource{records: map[string][]catalog.Record{"iPhone": records}}
	catalogSvc := NewCatalogService(src, []string{"iPhone"}, nopLogger{})
	publisher := &capturingPublisher{}

	svc := NewSelectionService(
		catalogSvc,
		memory.NewSessionRepository(),
		publisher,
		catalog.DefaultSchema,
		nopLogger{},
	)
	return svc, publisher
}

func iphoneRecords() []catalog.Record {
	return []catalog.Record{
		{"Model": "15 Pro", "Memory": "256GB", "Color": "Black", "SIM": "eSIM", "Price": "999"},
		{"Model": "15 Pro", "Memory": "512GB", "Color": "Black", "SIM": "eSIM", "Price": "1199"},
	}
}

func TestSelectionFlowToLead(t *testing.T) {
	svc, publisher := newSelectionFixture(iphoneRecords())
	ctx := context.Background()

	stage, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	assert.Equal(t, 0, stage.Stage)
	assert.Equal(t, "Model", stage.Attribute)
	assert.Equal(t, []string{"15 Pro"}, stage.Options)
	assert.Equal(t, 4, stage.TotalStages)

	choose := func(value string) *dto.ChooseResponse {
		res, err := svc.Choose(ctx, &dto.ChooseRequest{
			UserId: "42", Value: value, Username: "jdoe", FullName: "J. Doe",
		})
		require.NoError(t, err)
		return res
	}

	res := choose("15 Pro")
	assert.Equal(t, constant.SelectionInProgress, res.Status)
	assert.Equal(t, "Memory", res.Next.Attribute)
	assert.Equal(t, []string{"256GB", "512GB"}, res.Next.Options)

	res = choose("256GB")
	assert.Equal(t, "Color", res.Next.Attribute)
	assert.Equal(t, []string{"Black"}, res.Next.Options)

	res = choose("Black")
	assert.Equal(t, "SIM", res.Next.Attribute)

	res = choose("eSIM")
	assert.Equal(t, constant.SelectionComplete, res.Status)
	require.NotNil(t, res.Item)
	assert.Equal(t, "999", res.Item.Price)
	assert.Equal(t, "15 Pro", res.Item.Selection["Model"])

	// Session is destroyed on completion.
	_, err = svc.Options(ctx, "42")
	assert.ErrorIs(t, err, catalog.ErrNoSession)

	// The lead made it onto the bus with the customer identity.
	require.Len(t, publisher.payloads, 1)
	var lead dto.LeadMessage
	require.NoError(t, json.Unmarshal(publisher.payloads[0], &lead))
	assert.Equal(t, "42", lead.ChatUserId)
	assert.Equal(t, "jdoe", lead.Username)
	assert.Equal(t, "iPhone", lead.Source)
	assert.Equal(t, "999", lead.Price)
	assert.Equal(t, "256GB", lead.Selection["Memory"])
}

func TestSelectionInvalidChoiceKeepsStage(t *testing.T) {
	svc, publisher := newSelectionFixture(iphoneRecords())
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	_, err = svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "15 Pro"})
	require.NoError(t, err)

	_, err = svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "999GB"})
	assert.ErrorIs(t, err, catalog.ErrInvalidChoice)

	// Same stage is re-presented afterwards.
	stage, err := svc.Options(ctx, "42")
	require.NoError(t, err)
	assert.Equal(t, "Memory", stage.Attribute)
	assert.Equal(t, []string{"256GB", "512GB"}, stage.Options)

	assert.Empty(t, publisher.payloads)
}

func TestSelectionChooseWithoutSession(t *testing.T) {
	svc, _ := newSelectionFixture(iphoneRecords())

	_, err := svc.Choose(context.Background(), &dto.ChooseRequest{UserId: "42", Value: "15 Pro"})
	assert.ErrorIs(t, err, catalog.ErrNoSession)
}

func TestSelectionStartOnEmptyCatalog(t *testing.T) {
	svc, _ := newSelectionFixture([]catalog.Record{})

	_, err := svc.Start(context.Background(), &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	assert.ErrorIs(t, err, catalog.ErrNoOptions)

	// No dangling session is left behind.
	_, err = svc.Options(context.Background(), "42")
	assert.ErrorIs(t, err, catalog.ErrNoSession)
}

func TestSelectionRestartDiscardsPrior(t *testing.T) {
	svc, _ := newSelectionFixture(iphoneRecords())
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	_, err = svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "15 Pro"})
	require.NoError(t, err)

	stage, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	assert.Equal(t, 0, stage.Stage)
	assert.Empty(t, stage.Filter)
}

func TestSelectionReset(t *testing.T) {
	svc, _ := newSelectionFixture(iphoneRecords())
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)

	require.NoError(t, svc.Reset(ctx, "42"))
	require.NoError(t, svc.Reset(ctx, "42")) // idempotent

	_, err = svc.Options(ctx, "42")
	assert.ErrorIs(t, err, catalog.ErrNoSession)
}

// Stages with exactly one value are still prompted, never skipped.
func TestSelectionSingleValuedStagePrompts(t *testing.T) {
	svc, _ := newSelectionFixture(iphoneRecords())
	ctx := context.Background()

	stage, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	require.Equal(t, []string{"15 Pro"}, stage.Options)

	res, err := svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "15 Pro"})
	require.NoError(t, err)
	assert.Equal(t, constant.SelectionInProgress, res.Status)
	assert.Equal(t, 1, res.Next.Stage)
}

func TestSelectionNoOptionsMidFlow(t *testing.T) {
	// No record carries a Color: stage 2 cannot be rendered.
	records := []catalog.Record{
		{"Model": "15 Pro", "Memory": "256GB", "SIM": "eSIM", "Price": "999"},
	}
	svc, publisher := newSelectionFixture(records)
	ctx := context.Background()

	_, err := svc.Start(ctx, &dto.StartSelectionRequest{UserId: "42", Source: "iPhone"})
	require.NoError(t, err)
	_, err = svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "15 Pro"})
	require.NoError(t, err)

	res, err := svc.Choose(ctx, &dto.ChooseRequest{UserId: "42", Value: "256GB"})
	require.NoError(t, err)
	assert.Equal(t, constant.SelectionNoOptions, res.Status)

	// Flow aborted, session gone, nothing published.
	_, err = svc.Options(ctx, "42")
	assert.ErrorIs(t, err, catalog.ErrNoSession)
	assert.Empty(t, publisher.payloads)
}
