package warehouse

// Every query takes the orders table as its only format verb.

// localOrders selects orders with their calendar day in @tz. date_utc trails
// the local day east of UTC, so the scan starts one UTC day early.
const localOrders = `(
    SELECT *, IFNULL(DATE(SAFE_CAST(created_at AS TIMESTAMP), @tz), date_utc) AS local_date
    FROM %s
    WHERE date_utc >= DATE_SUB(@since, INTERVAL 1 DAY)
  )`

const onlineTagExpr = `REGEXP_CONTAINS(LOWER(IFNULL(tags, '')), r'\bonline\s*store\b')`

const monthToDateSQL = `
WITH base AS (
  SELECT
    order_total_net,
    LOWER(TRIM(IFNULL(store_region, ''))) AS region,
    ` + onlineTagExpr + ` AS is_online_tag
  FROM ` + localOrders + `
  WHERE local_date >= @month_start
)
SELECT
  SAFE_CAST(SUM(order_total_net) AS NUMERIC) AS total_mtd,
  SAFE_CAST(SUM(IF(region = 'east' AND NOT is_online_tag, order_total_net, 0)) AS NUMERIC) AS east_mtd,
  SAFE_CAST(SUM(IF(region = 'west' AND NOT is_online_tag, order_total_net, 0)) AS NUMERIC) AS west_mtd
FROM base
`

const repTableSQL = `
WITH base AS (
  SELECT
    order_id,
    order_total_net,
    amount_paid,
    TRIM(salesperson) AS salesperson,
    ` + onlineTagExpr + ` AS is_online_tag
  FROM ` + localOrders + `
  WHERE local_date >= @month_start
)
SELECT
  IFNULL(NULLIF(salesperson, ''), 'Unassigned') AS rep,
  SAFE_CAST(SUM(order_total_net) AS NUMERIC) AS sales,
  SAFE_CAST(SUM(amount_paid) AS NUMERIC) AS deposits,
  COUNT(DISTINCT order_id) AS sales_count
FROM base
WHERE NOT is_online_tag
GROUP BY 1
ORDER BY sales DESC
`

const highlightsSQL = `
WITH base AS (
  SELECT
    order_id,
    local_date,
    order_total_net,
    amount_paid,
    LOWER(TRIM(IFNULL(source, ''))) AS source,
    IFNULL(NULLIF(TRIM(salesperson), ''), 'Unassigned') AS rep,
    ` + onlineTagExpr + ` AS is_online_tag
  FROM ` + localOrders + `
  WHERE local_date >= LEAST(@fy_start, @month_start)
),
mtd AS (
  SELECT * FROM base WHERE local_date >= @month_start
),
mtd_by_rep AS (
  SELECT rep, SUM(amount_paid) AS deposits, COUNT(DISTINCT order_id) AS sales_count
  FROM mtd
  WHERE NOT is_online_tag
  GROUP BY rep
),
fy_by_rep AS (
  SELECT rep, SUM(order_total_net) AS sales
  FROM base
  WHERE local_date >= @fy_start AND NOT is_online_tag
  GROUP BY rep
)
SELECT
  (SELECT rep FROM mtd WHERE NOT is_online_tag ORDER BY order_total_net DESC LIMIT 1) AS largest_sale_rep,
  (SELECT SAFE_CAST(order_total_net AS NUMERIC) FROM mtd WHERE NOT is_online_tag ORDER BY order_total_net DESC LIMIT 1) AS largest_sale_amount,
  (SELECT rep FROM mtd_by_rep ORDER BY deposits DESC LIMIT 1) AS largest_deposits_rep,
  (SELECT SAFE_CAST(deposits AS NUMERIC) FROM mtd_by_rep ORDER BY deposits DESC LIMIT 1) AS largest_deposits_amount,
  (SELECT rep FROM mtd_by_rep ORDER BY sales_count DESC LIMIT 1) AS most_sales_count_rep,
  (SELECT sales_count FROM mtd_by_rep ORDER BY sales_count DESC LIMIT 1) AS most_sales_count,
  (SELECT rep FROM fy_by_rep ORDER BY sales DESC LIMIT 1) AS highest_sales_fy_rep,
  (SELECT SAFE_CAST(sales AS NUMERIC) FROM fy_by_rep ORDER BY sales DESC LIMIT 1) AS highest_sales_fy_amount,
  (SELECT SAFE_CAST(SUM(amount_paid) AS NUMERIC) FROM mtd) AS total_deposits_mtd,
  (SELECT SAFE_CAST(SUM(order_total_net) AS NUMERIC) FROM mtd WHERE is_online_tag OR source = 'online') AS online_sales_mtd,
  (SELECT SAFE_CAST(SUM(order_total_net) AS NUMERIC) FROM mtd WHERE source = 'partner') AS partner_sales_mtd
`

const salesLogSQL = `
SELECT
  date_utc,
  created_at,
  customer,
  salesperson,
  source,
  order_number,
  order_total_net,
  outstanding,
  amount_paid,
  shop,
  order_id,
  tags,
  store_region
FROM ` + localOrders + `
WHERE local_date >= @month_start
ORDER BY local_date DESC, created_at DESC
`
