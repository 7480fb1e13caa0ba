// Package testutil holds sample documents and request builders shared by tests.
package testutil

// FinanceExport is a price-history export with a preamble, one record per
// supported date spelling and two records that must be dropped.
const FinanceExport = `Google Финанс: GOOG
Исторические данные

Date,Open,High,Low,Close,Volume
Oct 7, 2024,169.14,169.90,164.13,164.39,14034722
"окт. 8, 2024","165,43","166,10","164,31","165,70","11 723 885"
bad row,1,2
Oct 9, 2024,abc,166.26,161.12,163.06,19666411
"Oct 10, 2024",164.86,166.26,161.12,163.06,19666411
`

// FinanceRecord is the single well-formed record used by the minimal example.
const FinanceRecord = "Date,Open,High,Low,Close,Volume\nOct 7, 2024,169.14,169.90,164.13,164.39,14034722\n"

// BudgetLedger is a monthly budget sheet that yields five ledger records.
const BudgetLedger = `Месячный бюджет
Начальная сумма
,,50 000 ₽
Расходы,Итого,-20 500 ₽
Питание,Продукты,-15 000 ₽
Транспорт,Метро,-5 000 ₽
Доходы, Зарплата, +100 000 ₽
`

// BudgetNarrative is classified as a budget but holds no ledger records.
const BudgetNarrative = `Месячный бюджет
Здесь будут ваши доходы и расходы.
`

// GenericTable is an ordinary table with a header and three records.
const GenericTable = `name,qty,price
widget,3,2.50
gadget,5,4.00
gizmo,7,1.25
`

// SalesReport mentions revenue and therefore classifies as sales.
const SalesReport = `region,revenue,manager
north,100,Ann
south,200,Bob
east,,Ann
`

// RaggedText is rejected by the table reader and handled by line scanning.
const RaggedText = `report
alpha,1
beta,2,3
`
