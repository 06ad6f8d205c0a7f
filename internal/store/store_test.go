package store

import (
	"path/filepath"
	"testing"
	"time"

	"fintrack/internal/database"
	"fintrack/internal/models"
	"fintrack/internal/util"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// low bcrypt cost keeps registration fast in tests
const testBcryptCost = 4

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	return db
}

func registerUser(t *testing.T, db *gorm.DB, login string) *models.User {
	t.Helper()
	user, err := NewUserStore(db, testBcryptCost).Register(login, "Secret123", "", "")
	require.NoError(t, err)
	return user
}

func amount(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

func TestRegister_CreatesDefaults(t *testing.T) {
	db := newTestDB(t)
	user := registerUser(t, db, "alice")

	cats, err := NewCategoryStore(db).List(user.ID)
	require.NoError(t, err)
	assert.Len(t, cats, 8)

	var profileCount int64
	require.NoError(t, db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&profileCount).Error)
	assert.EqualValues(t, 1, profileCount)
}

func TestRegister_Validation(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, testBcryptCost)

	var ve *ValidationError
	_, err := users.Register("ab", "Secret123", "", "") // too short
	assert.ErrorAs(t, err, &ve)

	_, err = users.Register("bad login!", "Secret123", "", "")
	assert.ErrorAs(t, err, &ve)

	_, err = users.Register("alice", "short", "", "")
	assert.ErrorAs(t, err, &ve)

	registerUser(t, db, "alice")
	_, err = users.Register("ALICE", "Secret123", "", "") // case-insensitive clash
	assert.ErrorIs(t, err, ErrDuplicateName)
}

func TestAuthenticate(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, testBcryptCost)
	registerUser(t, db, "alice")

	user, err := users.Authenticate("alice", "Secret123")
	require.NoError(t, err)
	assert.Equal(t, 1, user.LoginCount)
	assert.NotNil(t, user.LastLoginAt)

	_, err = users.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = users.Authenticate("nobody", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_Lockout(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, testBcryptCost)
	registerUser(t, db, "alice")

	for i := 0; i < 5; i++ {
		_, err := users.Authenticate("alice", "wrong")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}

	_, err := users.Authenticate("alice", "Secret123")
	assert.ErrorIs(t, err, ErrAccountLocked)
}

func TestOwnershipIsolation(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")

	cats := NewCategoryStore(db)
	aliceCats, err := cats.List(alice.ID)
	require.NoError(t, err)

	txs := NewTransactionStore(db)
	tx, err := txs.Create(alice.ID, TransactionInput{
		Type:       models.TypeExpense,
		Amount:     amount(500),
		Date:       util.Today(),
		CategoryID: aliceCats[0].ID,
	})
	require.NoError(t, err)

	// bob sees nothing of alice's
	_, err = cats.Get(bob.ID, aliceCats[0].ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, cats.Delete(bob.ID, aliceCats[0].ID), ErrNotFound)

	got, err := txs.Get(alice.ID, tx.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceCats[0].Name, got.Category.Name)
	_, err = txs.Get(bob.ID, tx.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = txs.Update(bob.ID, tx.ID, TransactionInput{
		Type:       models.TypeExpense,
		Amount:     amount(1),
		Date:       util.Today(),
		CategoryID: aliceCats[0].ID,
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, txs.Delete(bob.ID, tx.ID), ErrNotFound)

	bobList, err := txs.List(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, bobList)

	// bob cannot attach his entries to alice's category either
	_, err = txs.Create(bob.ID, TransactionInput{
		Type:       models.TypeExpense,
		Amount:     amount(10),
		Date:       util.Today(),
		CategoryID: aliceCats[0].ID,
	})
	assert.ErrorIs(t, err, ErrCategoryNotOwned)
}

func TestCategory_DuplicateName(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	bob := registerUser(t, db, "bob")
	cats := NewCategoryStore(db)

	_, err := cats.Create(alice.ID, "Коммуналка", "#112233", "bolt")
	require.NoError(t, err)

	_, err = cats.Create(alice.ID, "Коммуналка", "#445566", "bolt")
	assert.ErrorIs(t, err, ErrDuplicateName)

	// same name for another user is fine
	_, err = cats.Create(bob.ID, "Коммуналка", "#112233", "bolt")
	assert.NoError(t, err)
}

func TestCategory_DeleteGuard(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	cats := NewCategoryStore(db)
	txs := NewTransactionStore(db)
	planned := NewPlannedExpenseStore(db)

	cat, err := cats.Create(alice.ID, "Ремонт", "#AA0000", "hammer")
	require.NoError(t, err)

	tx, err := txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: amount(100), Date: util.Today(), CategoryID: cat.ID,
	})
	require.NoError(t, err)
	pe, err := planned.Create(alice.ID, PlannedExpenseInput{
		Amount: amount(200), Date: util.Today().AddDate(0, 1, 0), CategoryID: cat.ID,
	})
	require.NoError(t, err)

	err = cats.Delete(alice.ID, cat.ID)
	var inUse *InUseError
	require.ErrorAs(t, err, &inUse)
	assert.EqualValues(t, 1, inUse.TransactionCount)
	assert.EqualValues(t, 1, inUse.PlannedCount)

	// removing all references unblocks the delete
	require.NoError(t, txs.Delete(alice.ID, tx.ID))
	require.NoError(t, planned.Delete(alice.ID, pe.ID))
	assert.NoError(t, cats.Delete(alice.ID, cat.ID))
}

func TestTransaction_Validation(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	cats, err := NewCategoryStore(db).List(alice.ID)
	require.NoError(t, err)
	txs := NewTransactionStore(db)

	var ve *ValidationError

	_, err = txs.Create(alice.ID, TransactionInput{
		Type: "transfer", Amount: amount(10), Date: util.Today(), CategoryID: cats[0].ID,
	})
	assert.ErrorAs(t, err, &ve)

	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: decimal.Zero, Date: util.Today(), CategoryID: cats[0].ID,
	})
	assert.ErrorAs(t, err, &ve)

	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: amount(10), CategoryID: cats[0].ID,
	})
	assert.ErrorAs(t, err, &ve)

	// actual transactions cannot be future-dated
	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: amount(10),
		Date: util.Today().AddDate(0, 0, 1), CategoryID: cats[0].ID,
	})
	assert.ErrorAs(t, err, &ve)

	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: amount(10), Date: util.Today(), CategoryID: "missing",
	})
	assert.ErrorIs(t, err, ErrCategoryNotOwned)
}

func TestTransaction_ListOrderAndCategory(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	cats, err := NewCategoryStore(db).List(alice.ID)
	require.NoError(t, err)
	txs := NewTransactionStore(db)

	older := util.Today().AddDate(0, 0, -10)
	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeExpense, Amount: amount(1), Date: older, CategoryID: cats[0].ID,
	})
	require.NoError(t, err)
	_, err = txs.Create(alice.ID, TransactionInput{
		Type: models.TypeIncome, Amount: amount(2), Date: util.Today(), CategoryID: cats[1].ID,
	})
	require.NoError(t, err)

	list, err := txs.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)

	// newest first, category embedded
	assert.True(t, list[0].Date.After(list[1].Date))
	assert.Equal(t, cats[1].Name, list[0].Category.Name)
	assert.Equal(t, cats[0].Name, list[1].Category.Name)
}

func TestPlannedExpense_ForwardOrderAndFutureDates(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	cats, err := NewCategoryStore(db).List(alice.ID)
	require.NoError(t, err)
	planned := NewPlannedExpenseStore(db)

	// future dates are allowed for planning
	later, err := planned.Create(alice.ID, PlannedExpenseInput{
		Amount: amount(300), Date: util.Today().AddDate(0, 2, 0), CategoryID: cats[0].ID,
	})
	require.NoError(t, err)
	sooner, err := planned.Create(alice.ID, PlannedExpenseInput{
		Amount: amount(100), Date: util.Today().AddDate(0, 1, 0), CategoryID: cats[0].ID,
	})
	require.NoError(t, err)

	list, err := planned.List(alice.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, sooner.ID, list[0].ID)
	assert.Equal(t, later.ID, list[1].ID)

	got, err := planned.Get(alice.ID, sooner.ID)
	require.NoError(t, err)
	assert.Equal(t, cats[0].Name, got.Category.Name)
	_, err = planned.Get(alice.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSaving_CRUD(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	savings := NewSavingStore(db)

	sv, err := savings.Create(alice.ID, SavingInput{Amount: amount(250), Date: util.Today()})
	require.NoError(t, err)

	got, err := savings.Get(alice.ID, sv.ID)
	require.NoError(t, err)
	assert.True(t, got.Amount.Equal(amount(250)))
	_, err = savings.Get(alice.ID, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	sv, err = savings.Update(alice.ID, sv.ID, SavingInput{
		Amount: amount(300), Description: "bonus", Date: util.Today(),
	})
	require.NoError(t, err)
	assert.True(t, sv.Amount.Equal(amount(300)))

	var ve *ValidationError
	_, err = savings.Create(alice.ID, SavingInput{Amount: amount(-1), Date: util.Today()})
	assert.ErrorAs(t, err, &ve)

	require.NoError(t, savings.Delete(alice.ID, sv.ID))
	assert.ErrorIs(t, savings.Delete(alice.ID, sv.ID), ErrNotFound)
}

func TestGoal_CreateAndPatch(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	goals := NewGoalStore(db)

	g, err := goals.Create(alice.ID, "Phone", amount(1000), "")
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.IsZero())

	// current amount may exceed the target; there is no cap
	over := amount(1500)
	g, err = goals.Update(alice.ID, g.ID, GoalPatch{CurrentAmount: &over})
	require.NoError(t, err)
	assert.True(t, g.CurrentAmount.Equal(over))
	assert.True(t, g.CurrentAmount.GreaterThan(g.TargetAmount))

	var ve *ValidationError
	neg := amount(-5)
	_, err = goals.Update(alice.ID, g.ID, GoalPatch{CurrentAmount: &neg})
	assert.ErrorAs(t, err, &ve)

	zero := decimal.Zero
	_, err = goals.Update(alice.ID, g.ID, GoalPatch{TargetAmount: &zero})
	assert.ErrorAs(t, err, &ve)

	_, err = goals.Update(alice.ID, g.ID, GoalPatch{})
	assert.ErrorIs(t, err, ErrNoFields)

	_, err = goals.Create(alice.ID, "", amount(100), "")
	assert.ErrorAs(t, err, &ve)
	_, err = goals.Create(alice.ID, "Car", decimal.Zero, "")
	assert.ErrorAs(t, err, &ve)
}

func TestGoal_PartialPatchKeepsOtherFields(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	goals := NewGoalStore(db)

	g, err := goals.Create(alice.ID, "Phone", amount(1000), "new phone")
	require.NoError(t, err)

	title := "Laptop"
	g, err = goals.Update(alice.ID, g.ID, GoalPatch{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Laptop", g.Title)
	assert.Equal(t, "new phone", g.Description)
	assert.True(t, g.TargetAmount.Equal(amount(1000)))
}

func TestProfile_Patch(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	profiles := NewProfileStore(db)

	first := "Алиса"
	age := 30
	p, err := profiles.Update(alice.ID, ProfilePatch{FirstName: &first, Age: &age})
	require.NoError(t, err)
	assert.Equal(t, "Алиса", p.FirstName)
	assert.Equal(t, 30, p.Age)

	var ve *ValidationError
	bad := 200
	_, err = profiles.Update(alice.ID, ProfilePatch{Age: &bad})
	assert.ErrorAs(t, err, &ve)

	_, err = profiles.Update(alice.ID, ProfilePatch{})
	assert.ErrorIs(t, err, ErrNoFields)
}

func TestProfile_ClearBirthDate(t *testing.T) {
	db := newTestDB(t)
	alice := registerUser(t, db, "alice")
	profiles := NewProfileStore(db)

	birth := util.Today().AddDate(-30, 0, 0)
	p, err := profiles.Update(alice.ID, ProfilePatch{BirthDate: &birth})
	require.NoError(t, err)
	require.NotNil(t, p.BirthDate)

	// a zero-time patch stores NULL, not year-one
	var clear time.Time
	p, err = profiles.Update(alice.ID, ProfilePatch{BirthDate: &clear})
	require.NoError(t, err)
	assert.Nil(t, p.BirthDate)
}

func TestAdmin_UpdateAndDeleteUser(t *testing.T) {
	db := newTestDB(t)
	users := NewUserStore(db, testBcryptCost)
	alice := registerUser(t, db, "alice")
	registerUser(t, db, "bob")

	login := "bob"
	_, err := users.UpdateUser(alice.ID, UserPatch{Login: &login})
	assert.ErrorIs(t, err, ErrDuplicateName)

	email := "alice@example.com"
	updated, err := users.UpdateUser(alice.ID, UserPatch{Email: &email})
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", updated.Email)

	_, err = users.UpdateUser(alice.ID, UserPatch{})
	assert.ErrorIs(t, err, ErrNoFields)

	// cascade delete removes everything the user owns
	require.NoError(t, users.DeleteUser(alice.ID))
	assert.ErrorIs(t, users.DeleteUser(alice.ID), ErrNotFound)

	var catCount int64
	require.NoError(t, db.Model(&models.Category{}).Where("user_id = ?", alice.ID).Count(&catCount).Error)
	assert.EqualValues(t, 0, catCount)

	summaries, err := users.ListAll()
	require.NoError(t, err)
	assert.Len(t, summaries, 1)
}
