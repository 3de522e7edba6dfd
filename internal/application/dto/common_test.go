package dto_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stock-classification-api/internal/application/dto"
	"github.com/jhoicas/stock-classification-api/internal/domain"
)

func TestPageRequest_Validate(t *testing.T) {
	assert.NoError(t, dto.PageRequest{Skip: 0, Limit: 1}.Validate())
	assert.NoError(t, dto.PageRequest{Skip: 10, Limit: dto.MaxLimit}.Validate())

	for _, p := range []dto.PageRequest{
		{Skip: -1, Limit: 50},
		{Skip: 0, Limit: 0},
		{Skip: 0, Limit: dto.MaxLimit + 1},
	} {
		err := p.Validate()
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	}
}

func TestListEnvelope_DataNuncaEsNull(t *testing.T) {
	raw, err := json.Marshal(dto.NewListEnvelope[dto.SectorResponse](nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[],"count":0}`, string(raw))

	raw, err = json.Marshal(dto.NewPageEnvelope([]dto.IndustryResponse{{IndCode: "A1a", IndustryName: "Apps", SectCode: "A1"}}, 7))
	require.NoError(t, err)
	assert.JSONEq(t, `{"data":[{"ind_code":"A1a","industry_name":"Apps","sect_code":"A1"}],"count":1,"total":7}`, string(raw))
}

func TestBasicIndustryResponse_DefinicionNula(t *testing.T) {
	raw, err := json.Marshal(dto.BasicIndustryResponse{BasicIndCode: "A1a1", BasicIndustryName: "Mobile Apps", IndCode: "A1a"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"basic_ind_code":"A1a1","basic_industry_name":"Mobile Apps","definition":null,"ind_code":"A1a"}`, string(raw))
}
