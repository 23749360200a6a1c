package views

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/gridlex/internal/model"
)

func TestCalendar(t *testing.T) {
	records := []model.Record{
		task("t1", "Call", model.TaskPending, "2024-03-10"),
		opportunity("o1", "Deal", model.StageLead, "2024-02-01"),
		task("t2", "Email", model.TaskPending, "2024-03-10"),
		task("t3", "Undated", model.TaskPending, ""),
		&model.Contact{Base: model.Base{ID: "c1"}},
	}

	days := Calendar(records, "")
	require.Len(t, days, 2)
	assert.Equal(t, "2024-02-01", days[0].Date)
	assert.Equal(t, "2024-03-10", days[1].Date)
	require.Len(t, days[1].Records, 2)
	assert.Equal(t, "t1", days[1].Records[0].Meta().ID)
	assert.Equal(t, "t2", days[1].Records[1].Meta().ID)

	t.Run("month", func(t *testing.T) {
		days := Calendar(records, "2024-03")
		require.Len(t, days, 1)
		assert.Equal(t, "2024-03-10", days[0].Date)

		assert.Empty(t, Calendar(records, "2023-12"))
	})
}

func TestDateField(t *testing.T) {
	assert.Equal(t, "closeDate", DateField(model.Opportunities))
	assert.Equal(t, "dueDate", DateField(model.Tasks))
	assert.Empty(t, DateField(model.Contacts))
}
