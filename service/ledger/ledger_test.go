package ledger

import (
	"context"
	"testing"
	"time"

	"lendity/core"
	"lendity/pkg/number"
	"lendity/service/bank"
	"lendity/service/oracle"
	"lendity/service/risk"
	"lendity/service/wallet"

	"github.com/fox-one/pkg/store/db"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nopTx runs the transaction body directly; the store fakes below keep
// their state in maps and ignore the tx handle.
type nopTx struct{}

func (nopTx) Tx(fn func(tx *db.DB) error) error {
	return fn(nil)
}

type bankStore struct {
	nextID uint64
	banks  map[string]*core.Bank
}

func newBankStore() *bankStore {
	return &bankStore{banks: make(map[string]*core.Bank)}
}

func (s *bankStore) Create(ctx context.Context, tx *db.DB, b *core.Bank) error {
	s.nextID++
	b.ID = s.nextID

	cp := *b
	s.banks[b.AssetID] = &cp
	return nil
}

func (s *bankStore) Find(ctx context.Context, assetID string) (*core.Bank, error) {
	b, ok := s.banks[assetID]
	if !ok {
		return &core.Bank{}, nil
	}

	cp := *b
	return &cp, nil
}

func (s *bankStore) FindBySymbol(ctx context.Context, symbol string) (*core.Bank, error) {
	for _, b := range s.banks {
		if b.Symbol == symbol {
			cp := *b
			return &cp, nil
		}
	}

	return &core.Bank{}, nil
}

func (s *bankStore) All(ctx context.Context) ([]*core.Bank, error) {
	var banks []*core.Bank
	for _, b := range s.banks {
		cp := *b
		banks = append(banks, &cp)
	}

	return banks, nil
}

func (s *bankStore) AllAsMap(ctx context.Context) (map[string]*core.Bank, error) {
	banks := make(map[string]*core.Bank, len(s.banks))
	for k, b := range s.banks {
		cp := *b
		banks[k] = &cp
	}

	return banks, nil
}

func (s *bankStore) Update(ctx context.Context, tx *db.DB, b *core.Bank) error {
	cp := *b
	cp.Version++
	s.banks[b.AssetID] = &cp
	return nil
}

type positionStore struct {
	nextID    uint64
	positions map[string]*core.UserPosition
}

func newPositionStore() *positionStore {
	return &positionStore{positions: make(map[string]*core.UserPosition)}
}

func (s *positionStore) Create(ctx context.Context, tx *db.DB, p *core.UserPosition) error {
	s.nextID++
	p.ID = s.nextID

	cp := *p
	s.positions[p.UserID] = &cp
	return nil
}

func (s *positionStore) Find(ctx context.Context, userID string) (*core.UserPosition, error) {
	p, ok := s.positions[userID]
	if !ok {
		return &core.UserPosition{}, nil
	}

	cp := *p
	return &cp, nil
}

func (s *positionStore) All(ctx context.Context) ([]*core.UserPosition, error) {
	var positions []*core.UserPosition
	for _, p := range s.positions {
		cp := *p
		positions = append(positions, &cp)
	}

	return positions, nil
}

func (s *positionStore) Indebted(ctx context.Context) ([]*core.UserPosition, error) {
	var positions []*core.UserPosition
	for _, p := range s.positions {
		if p.BorrowShares.IsPositive() {
			cp := *p
			positions = append(positions, &cp)
		}
	}

	return positions, nil
}

func (s *positionStore) Update(ctx context.Context, tx *db.DB, p *core.UserPosition) error {
	cp := *p
	cp.Version++
	s.positions[p.UserID] = &cp
	return nil
}

type operationStore struct {
	ops []*core.Operation
}

func (s *operationStore) Create(ctx context.Context, tx *db.DB, op *core.Operation) error {
	cp := *op
	cp.ID = uint64(len(s.ops) + 1)
	s.ops = append(s.ops, &cp)
	return nil
}

func (s *operationStore) Find(ctx context.Context, traceID string) (*core.Operation, error) {
	for _, op := range s.ops {
		if op.TraceID == traceID {
			cp := *op
			return &cp, nil
		}
	}

	return &core.Operation{}, nil
}

func (s *operationStore) FindByUser(ctx context.Context, userID string, limit int) ([]*core.Operation, error) {
	var ops []*core.Operation
	for i := len(s.ops) - 1; i >= 0 && len(ops) < limit; i-- {
		if s.ops[i].UserID == userID {
			cp := *s.ops[i]
			ops = append(ops, &cp)
		}
	}

	return ops, nil
}

func (s *operationStore) last() *core.Operation {
	if len(s.ops) == 0 {
		return nil
	}

	return s.ops[len(s.ops)-1]
}

type testEnv struct {
	banks     *bankStore
	positions *positionStore
	ops       *operationStore
	source    *oracle.MemSource
	wallet    *wallet.Mem
	risk      core.IRiskService
	ledger    core.ILedgerService
}

// newTestEnv wires the ledger service against in-memory stores with a
// flat interest curve so amounts stay exact.
func newTestEnv() *testEnv {
	banks := newBankStore()
	positions := newPositionStore()
	ops := &operationStore{}

	source := oracle.NewMemSource()
	oracleSrv := oracle.New(source, time.Minute)
	bankSrv := bank.New()
	walletSrv := wallet.NewMem()
	riskSrv := risk.New(banks, bankSrv, oracleSrv)

	srv := &service{
		db:            nopTx{},
		bankStore:     banks,
		positionStore: positions,
		opStore:       ops,
		bankSrv:       bankSrv,
		riskSrv:       riskSrv,
		oracleSrv:     oracleSrv,
		walletSrv:     walletSrv,
		rates: core.Rates{
			CloseFactor: number.Decimal("0.5"),
		},
	}

	return &testEnv{
		banks:     banks,
		positions: positions,
		ops:       ops,
		source:    source,
		wallet:    walletSrv,
		risk:      riskSrv,
		ledger:    srv,
	}
}

func (env *testEnv) publish(feedID, price string) {
	env.source.Publish(&core.PriceQuote{
		FeedID:      feedID,
		Price:       number.Decimal(price),
		PublishedAt: time.Now(),
	})
}

func (env *testEnv) createBank(t *testing.T, assetID, symbol, feedID, threshold, bonus string) {
	t.Helper()

	_, err := env.ledger.InitializeBank(context.Background(), &core.Bank{
		AssetID:              assetID,
		Symbol:               symbol,
		PriceFeedID:          feedID,
		LiquidationThreshold: number.Decimal(threshold),
		LiquidationBonus:     number.Decimal(bonus),
	})
	require.Nil(t, err)
}

func (env *testEnv) createUser(t *testing.T, userID string) {
	t.Helper()

	_, err := env.ledger.InitializeUser(context.Background(), userID, "usd")
	require.Nil(t, err)
}

func (env *testEnv) fund(t *testing.T, account, assetID, amount string) {
	t.Helper()

	require.Nil(t, env.wallet.Fund(context.Background(), account, assetID, number.Decimal(amount)))
}

func (env *testEnv) health(t *testing.T, userID string) decimal.Decimal {
	t.Helper()

	position, err := env.positions.Find(context.Background(), userID)
	require.Nil(t, err)

	h, err := env.risk.HealthFactor(context.Background(), position)
	require.Nil(t, err)
	return h
}

func (env *testEnv) balance(t *testing.T, account, assetID string) decimal.Decimal {
	t.Helper()

	b, err := env.wallet.Balance(context.Background(), account, assetID)
	require.Nil(t, err)
	return b
}

func TestInitializeUser(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	trace, err := env.ledger.InitializeUser(ctx, "alice", "usd")
	require.Nil(t, err)
	assert.NotEqual(t, "", trace)

	position, err := env.positions.Find(ctx, "alice")
	require.Nil(t, err)
	assert.True(t, position.ID > 0)
	assert.Equal(t, "usd", position.QuoteAssetID)

	_, err = env.ledger.InitializeUser(ctx, "alice", "usd")
	assert.Equal(t, core.ErrAlreadyInitialized, err)

	_, err = env.ledger.InitializeUser(ctx, "", "usd")
	assert.Equal(t, core.ErrInvalidParameter, err)
}

func TestInitializeBank(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	trace, err := env.ledger.InitializeBank(ctx, &core.Bank{
		AssetID:              "usdc",
		Symbol:               "USDC",
		PriceFeedID:          "usdc-usd",
		LiquidationThreshold: number.Decimal("0.8"),
		LiquidationBonus:     number.Decimal("0.05"),
	})
	require.Nil(t, err)
	assert.NotEqual(t, "", trace)

	created, err := env.banks.Find(ctx, "usdc")
	require.Nil(t, err)
	assert.True(t, created.ID > 0)
	assert.Equal(t, "0.5", created.CloseFactor.String(), "default close factor applied")
	assert.True(t, created.TotalDeposits.IsZero())

	t.Run("duplicate asset", func(t *testing.T) {
		_, err := env.ledger.InitializeBank(ctx, &core.Bank{
			AssetID:              "usdc",
			PriceFeedID:          "usdc-usd",
			LiquidationThreshold: number.Decimal("0.8"),
		})
		assert.Equal(t, core.ErrDuplicateBank, err)
	})

	t.Run("threshold out of range", func(t *testing.T) {
		_, err := env.ledger.InitializeBank(ctx, &core.Bank{
			AssetID:              "sol",
			PriceFeedID:          "sol-usd",
			LiquidationThreshold: number.Decimal("1.5"),
		})
		assert.Equal(t, core.ErrInvalidParameter, err)

		_, err = env.ledger.InitializeBank(ctx, &core.Bank{
			AssetID:     "sol",
			PriceFeedID: "sol-usd",
		})
		assert.Equal(t, core.ErrInvalidParameter, err)
	})

	t.Run("bonus out of range", func(t *testing.T) {
		_, err := env.ledger.InitializeBank(ctx, &core.Bank{
			AssetID:              "sol",
			PriceFeedID:          "sol-usd",
			LiquidationThreshold: number.Decimal("0.8"),
			LiquidationBonus:     number.Decimal("0.95"),
		})
		assert.Equal(t, core.ErrInvalidParameter, err)
	})

	t.Run("missing feed", func(t *testing.T) {
		_, err := env.ledger.InitializeBank(ctx, &core.Bank{
			AssetID:              "sol",
			LiquidationThreshold: number.Decimal("0.8"),
		})
		assert.Equal(t, core.ErrInvalidParameter, err)
	})
}

func TestDeposit(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createUser(t, "alice")
	env.fund(t, "alice", "usdc", "1000")

	t.Run("unknown bank", func(t *testing.T) {
		_, err := env.ledger.Deposit(ctx, "alice", "doge", number.Decimal("10"))
		assert.Equal(t, core.ErrBankNotFound, err)
	})

	t.Run("unregistered user", func(t *testing.T) {
		_, err := env.ledger.Deposit(ctx, "mallory", "usdc", number.Decimal("10"))
		assert.Equal(t, core.ErrPositionNotFound, err)
	})

	t.Run("non-positive amount", func(t *testing.T) {
		_, err := env.ledger.Deposit(ctx, "alice", "usdc", decimal.Zero)
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	trace, err := env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("1000"))
	require.Nil(t, err)

	b, _ := env.banks.Find(ctx, "usdc")
	assert.Equal(t, "1000", b.TotalDeposits.String())
	assert.Equal(t, "1000", b.TotalDepositShares.String(), "first deposit mints shares 1:1")

	position, _ := env.positions.Find(ctx, "alice")
	assert.Equal(t, "usdc", position.DepositAssetID)
	assert.Equal(t, "1000", position.DepositShares.String())

	assert.True(t, env.balance(t, "alice", "usdc").IsZero())
	assert.Equal(t, "1000", env.balance(t, core.VaultAccount("usdc"), "usdc").String())

	op, _ := env.ops.Find(ctx, trace)
	require.True(t, op.ID > 0)
	assert.Equal(t, core.OpTypeDeposit, op.Type)
	assert.Equal(t, "1000", op.Amount.String())

	t.Run("second asset rejected", func(t *testing.T) {
		env.publish("sol-usd", "150")
		env.createBank(t, "sol", "SOL", "sol-usd", "0.75", "0.1")

		_, err := env.ledger.Deposit(ctx, "alice", "sol", number.Decimal("1"))
		assert.Equal(t, core.ErrCollateralMismatch, err)
	})
}

func TestWithdrawGates(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.publish("sol-usd", "150")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createBank(t, "sol", "SOL", "sol-usd", "0.75", "0.1")
	env.createUser(t, "alice")
	env.createUser(t, "whale")

	env.fund(t, "alice", "usdc", "1000")
	env.fund(t, "whale", "sol", "100")

	_, err := env.ledger.Deposit(ctx, "whale", "sol", number.Decimal("100"))
	require.Nil(t, err)

	_, err = env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("1000"))
	require.Nil(t, err)

	t.Run("no collateral in that bank", func(t *testing.T) {
		_, err := env.ledger.Withdraw(ctx, "alice", "sol", number.Decimal("1"))
		assert.Equal(t, core.ErrCollateralMismatch, err)
	})

	t.Run("more than the balance", func(t *testing.T) {
		_, err := env.ledger.Withdraw(ctx, "alice", "usdc", number.Decimal("1000.00000001"))
		assert.Equal(t, core.ErrInvalidAmount, err)
	})

	// 4 sol at 150 against 1000 * 0.8 borrowing power
	_, err = env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("4"))
	require.Nil(t, err)

	t.Run("health gate failure leaves state untouched", func(t *testing.T) {
		bankBefore, _ := env.banks.Find(ctx, "usdc")
		positionBefore, _ := env.positions.Find(ctx, "alice")
		opsBefore := len(env.ops.ops)

		// withdrawing 251 would leave 749 * 0.8 < 600 of debt
		_, err := env.ledger.Withdraw(ctx, "alice", "usdc", number.Decimal("251"))
		require.NotNil(t, err)

		var herr *core.HealthError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, core.ErrHealthCheckFailed, herr.Code)
		assert.True(t, herr.Ratio.LessThan(decimal.NewFromInt(1)))

		bankAfter, _ := env.banks.Find(ctx, "usdc")
		positionAfter, _ := env.positions.Find(ctx, "alice")
		assert.Equal(t, bankBefore.TotalDeposits.String(), bankAfter.TotalDeposits.String())
		assert.Equal(t, bankBefore.Version, bankAfter.Version)
		assert.Equal(t, positionBefore.DepositShares.String(), positionAfter.DepositShares.String())
		assert.Equal(t, opsBefore, len(env.ops.ops), "no operation recorded on failure")
	})

	t.Run("withdraw to the health line", func(t *testing.T) {
		// 750 * 0.8 = 600 covers the debt exactly
		_, err := env.ledger.Withdraw(ctx, "alice", "usdc", number.Decimal("250"))
		require.Nil(t, err)

		assert.Equal(t, "250", env.balance(t, "alice", "usdc").String())

		position, _ := env.positions.Find(ctx, "alice")
		assert.Equal(t, "750", position.DepositShares.String())
	})
}

func TestBorrowRepay(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.publish("sol-usd", "150")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createBank(t, "sol", "SOL", "sol-usd", "0.75", "0.1")
	env.createUser(t, "alice")
	env.createUser(t, "whale")

	env.fund(t, "alice", "usdc", "1000")
	env.fund(t, "whale", "sol", "20")

	_, err := env.ledger.Deposit(ctx, "whale", "sol", number.Decimal("20"))
	require.Nil(t, err)

	t.Run("borrow without collateral", func(t *testing.T) {
		_, err := env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("1"))
		require.NotNil(t, err)

		var herr *core.HealthError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, core.ErrHealthCheckFailed, herr.Code)
	})

	_, err = env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("1000"))
	require.Nil(t, err)

	t.Run("borrow beyond idle liquidity", func(t *testing.T) {
		_, err := env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("21"))
		require.NotNil(t, err)

		var lerr *core.LiquidityError
		require.ErrorAs(t, err, &lerr)
		assert.Equal(t, "20", lerr.Available.String())
	})

	trace, err := env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("4"))
	require.Nil(t, err)

	assert.Equal(t, "4", env.balance(t, "alice", "sol").String())

	b, _ := env.banks.Find(ctx, "sol")
	assert.Equal(t, "4", b.TotalBorrows.String())
	assert.Equal(t, "4", b.TotalBorrowShares.String())

	op, _ := env.ops.Find(ctx, trace)
	assert.Equal(t, core.OpTypeBorrow, op.Type)

	t.Run("borrowing a second asset rejected", func(t *testing.T) {
		_, err := env.ledger.Borrow(ctx, "alice", "usdc", number.Decimal("1"))
		assert.Equal(t, core.ErrDebtMismatch, err)
	})

	t.Run("repaying the wrong asset rejected", func(t *testing.T) {
		_, err := env.ledger.Repay(ctx, "alice", "usdc", number.Decimal("1"), false)
		assert.Equal(t, core.ErrDebtMismatch, err)
	})

	t.Run("repay above the debt", func(t *testing.T) {
		_, err := env.ledger.Repay(ctx, "alice", "sol", number.Decimal("5"), false)
		assert.Equal(t, core.ErrRepayExceedsDebt, err)
	})

	t.Run("repay max clears the debt", func(t *testing.T) {
		_, err := env.ledger.Repay(ctx, "alice", "sol", number.Decimal("100"), true)
		require.Nil(t, err)

		position, _ := env.positions.Find(ctx, "alice")
		assert.True(t, position.BorrowShares.IsZero())
		assert.True(t, env.balance(t, "alice", "sol").IsZero(), "only the debt was taken")

		b, _ := env.banks.Find(ctx, "sol")
		assert.True(t, b.TotalBorrows.IsZero())
		assert.True(t, b.TotalBorrowShares.IsZero())
	})
}

func TestLiquidate(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.publish("sol-usd", "150")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createBank(t, "sol", "SOL", "sol-usd", "0.75", "0.1")
	env.createUser(t, "alice")
	env.createUser(t, "whale")
	env.createUser(t, "bob")

	env.fund(t, "alice", "usdc", "1000")
	env.fund(t, "whale", "sol", "100")
	env.fund(t, "bob", "sol", "10")

	_, err := env.ledger.Deposit(ctx, "whale", "sol", number.Decimal("100"))
	require.Nil(t, err)

	_, err = env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("1000"))
	require.Nil(t, err)

	_, err = env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("4"))
	require.Nil(t, err)

	t.Run("self liquidation forbidden", func(t *testing.T) {
		_, err := env.ledger.Liquidate(ctx, "alice", "alice")
		assert.Equal(t, core.ErrOperationForbidden, err)
	})

	t.Run("healthy position not eligible", func(t *testing.T) {
		_, err := env.ledger.Liquidate(ctx, "bob", "alice")
		require.NotNil(t, err)

		var herr *core.HealthError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, core.ErrNotEligibleForLiquidation, herr.Code)
	})

	t.Run("debt free target not eligible", func(t *testing.T) {
		_, err := env.ledger.Liquidate(ctx, "bob", "whale")
		require.NotNil(t, err)

		var herr *core.HealthError
		require.ErrorAs(t, err, &herr)
		assert.Equal(t, core.ErrNotEligibleForLiquidation, herr.Code)
	})

	// 1000 * 0.8 / (4 * 250) < 1, under water now
	env.publish("sol-usd", "250")

	preHealth := env.health(t, "alice")
	assert.Equal(t, "0.8", preHealth.String())

	trace, err := env.ledger.Liquidate(ctx, "bob", "alice")
	require.Nil(t, err)

	// the 1000 of collateral no longer covers 1000 of debt plus the 5%
	// bonus, so the whole 4 sol debt is closed and the seizure is capped
	// at the collateral that is left
	position, _ := env.positions.Find(ctx, "alice")
	assert.True(t, position.BorrowShares.IsZero())
	assert.True(t, position.DepositShares.IsZero())

	assert.Equal(t, "6", env.balance(t, "bob", "sol").String())
	assert.Equal(t, "1000", env.balance(t, "bob", "usdc").String())

	solBank, _ := env.banks.Find(ctx, "sol")
	assert.True(t, solBank.TotalBorrows.IsZero())
	assert.True(t, solBank.TotalBorrowShares.IsZero())

	usdcBank, _ := env.banks.Find(ctx, "usdc")
	assert.True(t, usdcBank.TotalDeposits.IsZero())
	assert.True(t, usdcBank.TotalDepositShares.IsZero())

	postHealth := env.health(t, "alice")
	assert.True(t, postHealth.GreaterThanOrEqual(preHealth), "liquidation never worsens the target's health")

	op, _ := env.ops.Find(ctx, trace)
	assert.Equal(t, core.OpTypeLiquidate, op.Type)
	assert.Equal(t, "alice", op.UserID)
	assert.Equal(t, "4", op.Amount.String())
	assert.True(t, op.Health.LessThan(decimal.NewFromInt(1)))
}

func TestLiquidatePartialClosesTheGap(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.publish("sol-usd", "150")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createBank(t, "sol", "SOL", "sol-usd", "0.75", "0.1")
	env.createUser(t, "alice")
	env.createUser(t, "whale")
	env.createUser(t, "bob")

	env.fund(t, "alice", "usdc", "1000")
	env.fund(t, "whale", "sol", "100")
	env.fund(t, "bob", "sol", "10")

	_, err := env.ledger.Deposit(ctx, "whale", "sol", number.Decimal("100"))
	require.Nil(t, err)

	_, err = env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("1000"))
	require.Nil(t, err)

	_, err = env.ledger.Borrow(ctx, "alice", "sol", number.Decimal("4"))
	require.Nil(t, err)

	// mildly under water: 1000 * 0.8 / (4 * 217.5) < 1, while 1000 of
	// collateral still covers 870 of debt plus the 5% bonus
	env.publish("sol-usd", "217.5")

	preHealth := env.health(t, "alice")
	assert.True(t, preHealth.LessThan(decimal.NewFromInt(1)))

	_, err = env.ledger.Liquidate(ctx, "bob", "alice")
	require.Nil(t, err)

	// close factor 0.5 slices 2 sol of the 4 sol debt; the repaid 435
	// of value seizes 456.75 usdc with the 5% bonus
	position, _ := env.positions.Find(ctx, "alice")
	assert.Equal(t, "2", position.BorrowShares.String())
	assert.Equal(t, "543.25", position.DepositShares.String())

	assert.Equal(t, "8", env.balance(t, "bob", "sol").String())
	assert.Equal(t, "456.75", env.balance(t, "bob", "usdc").String())

	postHealth := env.health(t, "alice")
	assert.True(t, postHealth.GreaterThan(preHealth), "a partial close narrows the gap")
	assert.True(t, postHealth.LessThan(decimal.NewFromInt(1)))
}

func TestLiquidateSameAssetDebt(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()

	env.publish("usdc-usd", "1")
	env.createBank(t, "usdc", "USDC", "usdc-usd", "0.8", "0.05")
	env.createUser(t, "alice")
	env.createUser(t, "whale")
	env.createUser(t, "bob")

	env.fund(t, "alice", "usdc", "500")
	env.fund(t, "whale", "usdc", "500")
	env.fund(t, "bob", "usdc", "700")

	_, err := env.ledger.Deposit(ctx, "whale", "usdc", number.Decimal("500"))
	require.Nil(t, err)

	_, err = env.ledger.Deposit(ctx, "alice", "usdc", number.Decimal("500"))
	require.Nil(t, err)

	// seed a debt in the deposit asset directly, past the health gate
	position, _ := env.positions.Find(ctx, "alice")
	position.BorrowedAssetID = "usdc"
	position.BorrowShares = number.Decimal("700")
	require.Nil(t, env.positions.Update(ctx, nil, position))

	b, _ := env.banks.Find(ctx, "usdc")
	b.TotalBorrows = number.Decimal("700")
	b.TotalBorrowShares = number.Decimal("700")
	require.Nil(t, env.banks.Update(ctx, nil, b))

	_, err = env.ledger.Liquidate(ctx, "bob", "alice")
	require.Nil(t, err)

	// both sides of the settlement land on the one bank: the 700 debt
	// is closed and the 500 of collateral seized, nothing clobbered
	b, _ = env.banks.Find(ctx, "usdc")
	assert.True(t, b.TotalBorrows.IsZero())
	assert.True(t, b.TotalBorrowShares.IsZero())
	assert.Equal(t, "500", b.TotalDeposits.String())
	assert.Equal(t, "500", b.TotalDepositShares.String())

	position, _ = env.positions.Find(ctx, "alice")
	assert.True(t, position.BorrowShares.IsZero())
	assert.True(t, position.DepositShares.IsZero())

	assert.Equal(t, "500", env.balance(t, "bob", "usdc").String())
	assert.Equal(t, "1200", env.balance(t, core.VaultAccount("usdc"), "usdc").String())
}
