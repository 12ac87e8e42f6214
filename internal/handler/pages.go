package handler

// Terminal pages for the gateway redirect. The gateway sends the buyer's
// browser here, so these render as plain HTML rather than JSON.

const paymentSuccessPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Payment Successful</title>
  <style>
    body {
      font-family: Arial, sans-serif;
      text-align: center;
      margin-top: 50px;
    }
    h1 {
      color: green;
    }
    p {
      font-size: 18px;
    }
  </style>
</head>
<body>
  <h1>Payment Successful</h1>
  <p>Thank you for your payment. Your order has been successfully processed. Please proceed to the machine to get your snacks!</p>
</body>
</html>
`

// %s is the requested order id.
const invalidRequestPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>Order Not Found</title>
  <style>
    body {
      font-family: Arial, sans-serif;
      text-align: center;
      margin-top: 50px;
    }
    h1 {
      color: red;
    }
    p {
      font-size: 18px;
    }
  </style>
</head>
<body>
  <h1>Invalid Request</h1>
  <p>The request you are trying to send is invalid. Please refresh the page.</p>
  <p>After refreshing, if the problem is not solved please contact support.</p>
  <code>Requested Order ID: %s</code>
</body>
</html>
`
