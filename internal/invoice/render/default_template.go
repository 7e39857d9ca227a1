package render

// defaultTemplate is the built-in fallback document used when no custom
// template is configured or fetchable. Placeholder tokens are replaced
// by Substitute at render time.
const defaultTemplate = `<!doctype html>
<html lang="fr">
<head>
  <meta charset="utf-8" />
  <title>INVOICE_TYPE INVOICE_NUMBER</title>
  <style>
    * { box-sizing: border-box; }
    body {
      margin: 0;
      padding: 32px;
      font-family: "Helvetica Neue", Arial, sans-serif;
      color: #111827;
      background: #ffffff;
    }
    .document {
      max-width: 820px;
      margin: 0 auto;
    }
    .header {
      display: flex;
      justify-content: space-between;
      align-items: flex-start;
      border-bottom: 2px solid #1d4ed8;
      padding-bottom: 16px;
      margin-bottom: 24px;
    }
    .header h1 {
      margin: 0;
      font-size: 26px;
      color: #1d4ed8;
    }
    .meta {
      text-align: right;
      font-size: 14px;
    }
    .label {
      color: #6b7280;
      text-transform: uppercase;
      letter-spacing: 0.04em;
      font-size: 11px;
    }
    .client {
      margin-bottom: 24px;
      font-size: 14px;
      line-height: 1.5;
    }
    table {
      width: 100%;
      border-collapse: collapse;
      font-size: 14px;
    }
    th, td {
      padding: 10px;
      border-bottom: 1px solid #e5e7eb;
      text-align: left;
    }
    th {
      text-transform: uppercase;
      font-size: 11px;
      letter-spacing: 0.04em;
      color: #6b7280;
    }
    td.empty {
      text-align: center;
      color: #6b7280;
    }
    .totals {
      margin-top: 16px;
      margin-left: auto;
      width: 280px;
      font-size: 14px;
    }
    .totals .row {
      display: flex;
      justify-content: space-between;
      padding: 4px 0;
    }
    .totals .grand {
      border-top: 1px solid #e5e7eb;
      margin-top: 6px;
      padding-top: 8px;
      font-weight: 700;
      font-size: 16px;
    }
    .footer {
      margin-top: 32px;
      border-top: 1px solid #e5e7eb;
      padding-top: 16px;
      font-size: 12px;
      color: #6b7280;
    }
    .footer h3 {
      margin: 12px 0 4px;
      font-size: 12px;
      text-transform: uppercase;
      color: #111827;
    }
  </style>
</head>
<body>
  <div class="document">
    <div class="header">
      <div>
        <h1>INVOICE_TYPE</h1>
        <div>N° INVOICE_NUMBER</div>
      </div>
      <div class="meta">
        <div><span class="label">Date d'émission</span> ISSUE_DATE</div>
        <div><span class="label">Date d'échéance</span> DUE_DATE</div>
      </div>
    </div>

    <div class="client">
      <div class="label">Client</div>
      <div><strong>CLIENT_NAME</strong></div>
      <div>CLIENT_COMPANY_NAME</div>
      <div>CLIENT_ADDRESS</div>
      <div>CLIENT_POSTAL_CODE CLIENT_CITY</div>
      <div>CLIENT_EMAIL</div>
      <div>CLIENT_PHONE</div>
      <div>CLIENT_TAX_ID</div>
    </div>

    <table>
      <thead>
        <tr>
          <th>Description</th>
          <th>Quantité</th>
          <th>Unité</th>
          <th>Prix unitaire</th>
          <th>Montant</th>
        </tr>
      </thead>
      <tbody>
        ITEMS_ROWS
      </tbody>
    </table>

    <div class="totals">
      <div class="row"><span>Sous-total</span><span>SUBTOTAL</span></div>
      <div class="row"><span>TVA (TAX_RATE%)</span><span>TAX_AMOUNT</span></div>
      <div class="row grand"><span>Total</span><span>TOTAL_AMOUNT</span></div>
    </div>

    <div class="footer">
      <h3>Notes</h3>
      <div>NOTES_CONTENT</div>
      <h3>Conditions</h3>
      <div>TERMS_CONTENT</div>
      <h3>Référence</h3>
      <div>REFERENCE_CONTENT</div>
    </div>
  </div>
</body>
</html>
`
